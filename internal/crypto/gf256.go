package crypto

// AES lookup tables. They are filled once at package init and never written
// afterwards, so they are safe to share between goroutines.
var (
	sbox    [256]byte
	sboxInv [256]byte

	mul2  [256]byte
	mul3  [256]byte
	mul9  [256]byte
	mul11 [256]byte
	mul13 [256]byte
	mul14 [256]byte
)

// shiftRowsTable is the AES row rotation for a column-major state:
// out[i] = in[shiftRowsTable[i]].
var shiftRowsTable = [16]byte{0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12, 1, 6, 11}

var shiftRowsTableInv [16]byte

func init() {
	for i := range 256 {
		b := byte(i)
		s := affine(gfInv(b))
		sbox[i] = s
		sboxInv[s] = b

		mul2[i] = gfMul(b, 2)
		mul3[i] = gfMul(b, 3)
		mul9[i] = gfMul(b, 9)
		mul11[i] = gfMul(b, 11)
		mul13[i] = gfMul(b, 13)
		mul14[i] = gfMul(b, 14)
	}
	for i, v := range shiftRowsTable {
		shiftRowsTableInv[v] = byte(i)
	}
}

// gfMul multiplies a and b in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func gfMul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// gfInv returns the multiplicative inverse of a, with 0 mapping to 0.
// a^254 == a^-1 in GF(2^8).
func gfInv(a byte) byte {
	if a == 0 {
		return 0
	}
	r := byte(1)
	base := a
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			r = gfMul(r, base)
		}
		base = gfMul(base, base)
	}
	return r
}

func affine(b byte) byte {
	var r byte
	for i := range 8 {
		bit := (b >> i) ^ (b >> ((i + 4) % 8)) ^ (b >> ((i + 5) % 8)) ^
			(b >> ((i + 6) % 8)) ^ (b >> ((i + 7) % 8))
		r |= (bit & 1) << i
	}
	return r ^ 0x63
}
