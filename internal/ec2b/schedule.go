package ec2b

import (
	"fmt"

	"github.com/udisondev/ec2bgen/internal/crypto"
)

// RoundKeys builds the 176-byte round-key schedule from the AES xorpad tables.
//
// Every round key byte (round r, row i) is the XOR over all 16 columns j of
// AesXorpad[1][idx] ^ AesXorpad[0][idx], idx = r*256 + i*16 + j. The columns
// only address the tables; they all fold into the same schedule byte.
// The schedule does not depend on the key being scrambled.
func RoundKeys(t *Tables) ([]byte, error) {
	a0, a1 := t.AesXorpad[0], t.AesXorpad[1]
	schedule := make([]byte, crypto.ScheduleSize)
	for r := range crypto.Rounds {
		for i := range 16 {
			for j := range 16 {
				idx := r<<8 + i<<4 + j
				if idx >= len(a0) || idx >= len(a1) {
					return nil, fmt.Errorf("%w: round %d row %d column %d (index %d, tables %d/%d)",
						ErrTableIndexOutOfRange, r, i, j, idx, len(a0), len(a1))
				}
				schedule[r*16+i] ^= a1[idx] ^ a0[idx]
			}
		}
	}
	return schedule, nil
}
