package ec2b

import (
	"encoding/binary"
	"fmt"
)

// SeedFileSize is the size of an encoded seed file.
const SeedFileSize = 4 + 4 + KeySize + 4 + DataSize

// SeedFileMagic opens every seed file.
const SeedFileMagic = "Ec2b"

// SeedFile is the client-facing half of an artifact pair: the original,
// unscrambled key and data buffer the xorpad is derived from.
//
// Layout (little-endian):
//
//	0   4     magic "Ec2b"
//	4   4     key length (16)
//	8   16    key
//	24  4     data length (2048)
//	28  2048  data
type SeedFile struct {
	Key  [KeySize]byte
	Data [DataSize]byte
}

// MarshalBinary encodes the seed file.
func (f *SeedFile) MarshalBinary() ([]byte, error) {
	b := make([]byte, SeedFileSize)
	copy(b[0:4], SeedFileMagic)
	binary.LittleEndian.PutUint32(b[4:8], KeySize)
	copy(b[8:8+KeySize], f.Key[:])
	binary.LittleEndian.PutUint32(b[24:28], DataSize)
	copy(b[28:], f.Data[:])
	return b, nil
}

// ParseSeedFile decodes and validates an encoded seed file.
func ParseSeedFile(b []byte) (*SeedFile, error) {
	if len(b) != SeedFileSize {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSeedFile, len(b), SeedFileSize)
	}
	if string(b[0:4]) != SeedFileMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidSeedFile, b[0:4])
	}
	if n := binary.LittleEndian.Uint32(b[4:8]); n != KeySize {
		return nil, fmt.Errorf("%w: key length %d, want %d", ErrInvalidSeedFile, n, KeySize)
	}
	if n := binary.LittleEndian.Uint32(b[24:28]); n != DataSize {
		return nil, fmt.Errorf("%w: data length %d, want %d", ErrInvalidSeedFile, n, DataSize)
	}

	f := &SeedFile{}
	copy(f.Key[:], b[8:8+KeySize])
	copy(f.Data[:], b[28:])
	return f, nil
}
