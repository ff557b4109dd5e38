package ec2b

import (
	"encoding/binary"
	"io"
	"math/rand/v2"

	"github.com/zeebo/blake3"
)

// NewSeededSource returns a deterministic byte stream for reproducible runs.
// Streams for the same seed but different indices are independent, so each
// job of a batch can own one.
//
// The returned reader is not safe for concurrent use.
func NewSeededSource(seed []byte, index int) io.Reader {
	material := make([]byte, len(seed)+8)
	copy(material, seed)
	binary.LittleEndian.PutUint64(material[len(seed):], uint64(index))
	return rand.NewChaCha8(blake3.Sum256(material))
}
