package ec2b

import (
	"fmt"
	"os"

	"github.com/udisondev/ec2bgen/internal/crypto"
)

const (
	// AesXorpadSize is the size of each AES xorpad table:
	// one byte per (round, row, column).
	AesXorpadSize = crypto.Rounds * 16 * 16
	// KeyXorpadSize is the size of the key xorpad table.
	KeyXorpadSize = KeySize
	// TablesFileSize is the size of a tables file produced by MarshalBinary.
	TablesFileSize = 2*AesXorpadSize + KeyXorpadSize
)

// Tables holds the constant tables the client uses to derive Ec2b keys.
// They are data, not code: load them once at startup and share the same
// *Tables between derivations. A Tables value must not be modified after
// construction.
type Tables struct {
	// AesXorpad are the two tables XORed together to build round keys.
	AesXorpad [2][]byte
	// KeyXorpad is XORed into the scrambled key.
	KeyXorpad []byte
}

// NewTables validates and copies the three constant tables.
func NewTables(aes0, aes1, keyXorpad []byte) (*Tables, error) {
	if len(aes0) != AesXorpadSize || len(aes1) != AesXorpadSize {
		return nil, fmt.Errorf("%w: aes xorpad tables are %d and %d bytes, want %d",
			ErrInvalidTables, len(aes0), len(aes1), AesXorpadSize)
	}
	if len(keyXorpad) != KeyXorpadSize {
		return nil, fmt.Errorf("%w: key xorpad is %d bytes, want %d",
			ErrInvalidTables, len(keyXorpad), KeyXorpadSize)
	}
	return &Tables{
		AesXorpad: [2][]byte{clone(aes0), clone(aes1)},
		KeyXorpad: clone(keyXorpad),
	}, nil
}

// ParseTables decodes a tables file: AesXorpad[0] followed by AesXorpad[1]
// followed by KeyXorpad, without headers or padding.
func ParseTables(b []byte) (*Tables, error) {
	if len(b) != TablesFileSize {
		return nil, fmt.Errorf("%w: tables file is %d bytes, want %d", ErrInvalidTables, len(b), TablesFileSize)
	}
	return NewTables(
		b[:AesXorpadSize],
		b[AesXorpadSize:2*AesXorpadSize],
		b[2*AesXorpadSize:],
	)
}

// LoadTables reads and parses the tables file at path.
func LoadTables(path string) (*Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables %s: %w", path, err)
	}
	t, err := ParseTables(b)
	if err != nil {
		return nil, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	return t, nil
}

// MarshalBinary encodes t in the layout ParseTables reads.
func (t *Tables) MarshalBinary() ([]byte, error) {
	if len(t.AesXorpad[0]) != AesXorpadSize || len(t.AesXorpad[1]) != AesXorpadSize ||
		len(t.KeyXorpad) != KeyXorpadSize {
		return nil, ErrInvalidTables
	}
	b := make([]byte, 0, TablesFileSize)
	b = append(b, t.AesXorpad[0]...)
	b = append(b, t.AesXorpad[1]...)
	b = append(b, t.KeyXorpad...)
	return b, nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
