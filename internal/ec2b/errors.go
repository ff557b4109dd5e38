package ec2b

import (
	"errors"

	"github.com/udisondev/ec2bgen/internal/crypto"
)

var (
	// ErrInvalidInputLength is returned when a key, data buffer or requested
	// output does not have the size the derivation requires.
	ErrInvalidInputLength = crypto.ErrInvalidInputLength

	// ErrTableIndexOutOfRange is returned when a round-key index falls
	// outside the AES xorpad tables.
	ErrTableIndexOutOfRange = errors.New("ec2b: table index out of range")

	// ErrInvalidTables is returned when constant tables have the wrong size.
	ErrInvalidTables = errors.New("ec2b: invalid constant tables")

	// ErrInvalidSeedFile is returned when a seed file is malformed.
	ErrInvalidSeedFile = errors.New("ec2b: invalid seed file")
)
