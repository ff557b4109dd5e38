package crypto

import "fmt"

const (
	// BlockSize is the block size of the transform in bytes.
	BlockSize = 16
	// Rounds is the number of round keys in a schedule.
	Rounds = 11
	// ScheduleSize is the size of a full round-key schedule.
	ScheduleSize = Rounds * BlockSize
)

// BlockCipher is the 11-round AES-structured transform used to scramble
// Ec2b keys. Its forward direction is built from the AES decryption tables
// (inverse S-box, inverse row rotation, inverse column mixing); Decrypt
// applies the forward AES tables in mirrored order and undoes Encrypt.
//
// A BlockCipher holds only its round keys and is safe for concurrent use.
type BlockCipher struct {
	schedule [ScheduleSize]byte
}

// NewBlockCipher creates a BlockCipher from a 176-byte round-key schedule.
// The schedule is copied.
func NewBlockCipher(schedule []byte) (*BlockCipher, error) {
	if len(schedule) != ScheduleSize {
		return nil, fmt.Errorf("%w: schedule is %d bytes, want %d", ErrInvalidInputLength, len(schedule), ScheduleSize)
	}
	c := &BlockCipher{}
	copy(c.schedule[:], schedule)
	return c, nil
}

// Encrypt runs the forward transform over src and writes the result to dst.
// dst and src may overlap entirely.
func (c *BlockCipher) Encrypt(dst, src []byte) error {
	if err := checkBlocks(dst, src); err != nil {
		return fmt.Errorf("block encrypt: %w", err)
	}

	var state [BlockSize]byte
	copy(state[:], src)

	c.xorRoundKey(&state, 0)
	for round := 1; round < Rounds-1; round++ {
		subBytesInv(&state)
		shiftRowsInv(&state)
		mixColumnsInv(&state)
		c.xorRoundKey(&state, round)
	}
	subBytesInv(&state)
	shiftRowsInv(&state)
	c.xorRoundKey(&state, Rounds-1)

	copy(dst, state[:])
	return nil
}

// Decrypt reverses Encrypt.
func (c *BlockCipher) Decrypt(dst, src []byte) error {
	if err := checkBlocks(dst, src); err != nil {
		return fmt.Errorf("block decrypt: %w", err)
	}

	var state [BlockSize]byte
	copy(state[:], src)

	c.xorRoundKey(&state, Rounds-1)
	shiftRows(&state)
	subBytes(&state)
	for round := Rounds - 2; round > 0; round-- {
		c.xorRoundKey(&state, round)
		mixColumns(&state)
		shiftRows(&state)
		subBytes(&state)
	}
	c.xorRoundKey(&state, 0)

	copy(dst, state[:])
	return nil
}

func checkBlocks(dst, src []byte) error {
	if len(src) != BlockSize {
		return fmt.Errorf("%w: src is %d bytes, want %d", ErrInvalidInputLength, len(src), BlockSize)
	}
	if len(dst) != BlockSize {
		return fmt.Errorf("%w: dst is %d bytes, want %d", ErrInvalidInputLength, len(dst), BlockSize)
	}
	return nil
}

func (c *BlockCipher) xorRoundKey(state *[BlockSize]byte, round int) {
	rk := c.schedule[round*BlockSize : (round+1)*BlockSize]
	for i := range BlockSize {
		state[i] ^= rk[i]
	}
}

func subBytes(state *[BlockSize]byte) {
	for i := range BlockSize {
		state[i] = sbox[state[i]]
	}
}

func subBytesInv(state *[BlockSize]byte) {
	for i := range BlockSize {
		state[i] = sboxInv[state[i]]
	}
}

func shiftRows(state *[BlockSize]byte) {
	tmp := *state
	for i := range BlockSize {
		state[i] = tmp[shiftRowsTable[i]]
	}
}

func shiftRowsInv(state *[BlockSize]byte) {
	tmp := *state
	for i := range BlockSize {
		state[i] = tmp[shiftRowsTableInv[i]]
	}
}

func mixColumns(state *[BlockSize]byte) {
	for c := 0; c < BlockSize; c += 4 {
		a0, a1, a2, a3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = mul2[a0] ^ mul3[a1] ^ a2 ^ a3
		state[c+1] = a0 ^ mul2[a1] ^ mul3[a2] ^ a3
		state[c+2] = a0 ^ a1 ^ mul2[a2] ^ mul3[a3]
		state[c+3] = mul3[a0] ^ a1 ^ a2 ^ mul2[a3]
	}
}

func mixColumnsInv(state *[BlockSize]byte) {
	for c := 0; c < BlockSize; c += 4 {
		a0, a1, a2, a3 := state[c], state[c+1], state[c+2], state[c+3]
		state[c] = mul14[a0] ^ mul11[a1] ^ mul13[a2] ^ mul9[a3]
		state[c+1] = mul9[a0] ^ mul14[a1] ^ mul11[a2] ^ mul13[a3]
		state[c+2] = mul13[a0] ^ mul9[a1] ^ mul14[a2] ^ mul11[a3]
		state[c+3] = mul11[a0] ^ mul13[a1] ^ mul9[a2] ^ mul14[a3]
	}
}
