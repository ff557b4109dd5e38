package ec2b

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/ec2bgen/internal/crypto"
)

const (
	// KeySize is the size of an Ec2b key.
	KeySize = crypto.BlockSize
	// DataSize is the size of the random data buffer stored in a seed file.
	DataSize = 2048
	// XorpadSize is the only keystream length the client derives.
	XorpadSize = 4096

	seedConstant = 0xCEAC3B5A867837AC
)

// Deriver scrambles keys with the round keys derived from a set of constant
// tables. It precomputes the schedule once and is safe for concurrent use.
type Deriver struct {
	tables *Tables
	cipher *crypto.BlockCipher
}

// NewDeriver builds a Deriver for t. The tables must not be modified
// afterwards.
func NewDeriver(t *Tables) (*Deriver, error) {
	if len(t.KeyXorpad) != KeyXorpadSize {
		return nil, fmt.Errorf("%w: key xorpad is %d bytes, want %d", ErrInvalidTables, len(t.KeyXorpad), KeyXorpadSize)
	}
	schedule, err := RoundKeys(t)
	if err != nil {
		return nil, fmt.Errorf("building round keys: %w", err)
	}
	c, err := crypto.NewBlockCipher(schedule)
	if err != nil {
		return nil, fmt.Errorf("creating block cipher: %w", err)
	}
	return &Deriver{tables: t, cipher: c}, nil
}

// ScrambleKey runs the block transform over key and returns the result.
// key is left unchanged.
func (d *Deriver) ScrambleKey(key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidInputLength, len(key), KeySize)
	}
	out := make([]byte, KeySize)
	if err := d.cipher.Encrypt(out, key); err != nil {
		return nil, fmt.Errorf("scrambling key: %w", err)
	}
	return out, nil
}

// DeriveKey scrambles key and XORs the key xorpad into it, producing the
// key DeriveKeystream expects.
func (d *Deriver) DeriveKey(key []byte) ([]byte, error) {
	out, err := d.ScrambleKey(key)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] ^= d.tables.KeyXorpad[i]
	}
	return out, nil
}

// Checksum XOR-folds data as little-endian 64-bit words into an all-ones
// accumulator. A trailing partial word is ignored.
func Checksum(data []byte) uint64 {
	v := ^uint64(0)
	for i := 0; i+8 <= len(data); i += 8 {
		v ^= binary.LittleEndian.Uint64(data[i:])
	}
	return v
}

// KeystreamSeed returns the MT64 seed for a derived key and data buffer.
func KeystreamSeed(key, data []byte) (uint64, error) {
	if len(key) != KeySize {
		return 0, fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidInputLength, len(key), KeySize)
	}
	k0 := binary.LittleEndian.Uint64(key[0:])
	k1 := binary.LittleEndian.Uint64(key[8:])
	return k1 ^ seedConstant ^ Checksum(data) ^ k0, nil
}

// DeriveKeystream expands a derived key and data buffer into the xorpad.
// outputLen must be XorpadSize.
func DeriveKeystream(key, data []byte, outputLen int) ([]byte, error) {
	if outputLen != XorpadSize {
		return nil, fmt.Errorf("%w: output is %d bytes, only %d is supported", ErrInvalidInputLength, outputLen, XorpadSize)
	}
	seed, err := KeystreamSeed(key, data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, outputLen)
	_, _ = crypto.NewMT64(seed).Read(out)
	return out, nil
}
