package crypto

import "encoding/binary"

const (
	mtN         = 312
	mtM         = 156
	mtMatrixA   = 0xB5026F5AA96619E9
	mtUpperMask = 0xFFFFFFFF80000000
	mtLowerMask = 0x7FFFFFFF
)

// MT64 is a 64-bit Mersenne Twister (MT19937-64) keystream generator.
// It implements math/rand/v2.Source.
//
// MT64 is not safe for concurrent use; create one per derivation.
type MT64 struct {
	state [mtN]uint64
	index int
}

// NewMT64 returns a generator seeded with seed.
func NewMT64(seed uint64) *MT64 {
	m := &MT64{}
	m.state[0] = seed
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 6364136223846793005*(prev^(prev>>62)) + uint64(i)
	}
	m.index = mtN
	return m
}

// Uint64 returns the next tempered output word.
func (m *MT64) Uint64() uint64 {
	if m.index >= mtN {
		m.twist()
	}

	x := m.state[m.index]
	m.index++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}

// Read fills p with successive output words in little-endian order.
// A trailing partial word is truncated. Read never fails.
func (m *MT64) Read(p []byte) (int, error) {
	n := len(p)
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, m.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], m.Uint64())
		copy(p, tail[:])
	}
	return n, nil
}

func (m *MT64) twist() {
	s := &m.state
	i := 0
	for ; i < mtN-mtM; i++ {
		x := (s[i] & mtUpperMask) | (s[i+1] & mtLowerMask)
		s[i] = s[i+mtM] ^ (x >> 1) ^ mag(x)
	}
	for ; i < mtN-1; i++ {
		x := (s[i] & mtUpperMask) | (s[i+1] & mtLowerMask)
		s[i] = s[i+mtM-mtN] ^ (x >> 1) ^ mag(x)
	}
	x := (s[mtN-1] & mtUpperMask) | (s[0] & mtLowerMask)
	s[mtN-1] = s[mtM-1] ^ (x >> 1) ^ mag(x)
	m.index = 0
}

func mag(x uint64) uint64 {
	if x&1 != 0 {
		return mtMatrixA
	}
	return 0
}
