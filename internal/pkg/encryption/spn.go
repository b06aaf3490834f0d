package encryption

const (
	// SPNBlockSize is the block size in bytes (128 bits).
	SPNBlockSize = 16
	// SPNKeySize is the key length in hex characters (128 bits).
	SPNKeySize = 32

	spnRounds = 10
	spnWords  = 4 * (spnRounds + 1) // 4-byte words in the expanded key
)

// Round constants for the key expansion, indexed by i/4.
var rcon = [11]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1B, 0x36}

// The substitution boxes are fixed tables of the cipher; they are built once
// at load time from the GF(2^8) inverse composed with the affine transform,
// which keeps the forward and inverse boxes consistent by construction.
var (
	sBox    [256]byte
	invSBox [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		v := byte(i)
		if v != 0 {
			v = gfInverse(v)
		}
		v = sboxAffine(v)
		sBox[i] = v
		invSBox[v] = byte(i)
	}
}

// sboxAffine applies the bitwise affine transform over GF(2) that follows
// inversion in the S-box construction.
func sboxAffine(b byte) byte {
	var out byte
	for i := 0; i < 8; i++ {
		bit := (b>>i ^ b>>((i+4)%8) ^ b>>((i+5)%8) ^ b>>((i+6)%8) ^ b>>((i+7)%8)) & 1
		out |= bit << i
	}
	return out ^ 0x63
}

// gfMul multiplies in GF(2^8) with reduction modulus 0x11B, by repeated
// doubling with conditional accumulation on each multiplier bit.
func gfMul(a, b byte) byte {
	var result byte
	for b > 0 {
		if b&1 == 1 {
			result ^= a
		}
		high := a & 0x80
		a <<= 1
		if high != 0 {
			a ^= 0x1B
		}
		b >>= 1
	}
	return result
}

// gfInverse computes a^254, the multiplicative inverse for nonzero a.
func gfInverse(a byte) byte {
	out := byte(1)
	for i := 0; i < 254; i++ {
		out = gfMul(out, a)
	}
	return out
}

// SPN is the 128-bit substitution-permutation-network engine. The state is a
// 4x4 byte matrix stored column-major: byte i sits at row i%4, column i/4.
type SPN struct{}

// NewSPN creates the SPN engine. It is stateless; the key is expanded per
// call.
func NewSPN() *SPN {
	return &SPN{}
}

func (s *SPN) Name() string {
	return "SPN128"
}

func (s *SPN) BlockSize() int {
	return SPNBlockSize
}

func (s *SPN) KeySize() int {
	return SPNKeySize
}

func (s *SPN) Encrypt(plaintext, key string) (string, error) {
	return encryptText(s, plaintext, key)
}

func (s *SPN) Decrypt(ciphertext, key string) (string, error) {
	return decryptText(s, ciphertext, key)
}

func (s *SPN) schedule(key []byte) blockSchedule {
	return expandSPNKey(key)
}

type spnSchedule struct {
	roundKeys [spnRounds + 1][SPNBlockSize]byte
}

// expandSPNKey expands the 16 key bytes into 11 round keys. Every 4th word
// is rotated, substituted and folded with a round constant; the rest are
// XOR-chains of prior words.
func expandSPNKey(key []byte) *spnSchedule {
	var w [spnWords][4]byte
	for i := 0; i < 4; i++ {
		copy(w[i][:], key[4*i:4*i+4])
	}

	for i := 4; i < spnWords; i++ {
		temp := w[i-1]
		if i%4 == 0 {
			temp = [4]byte{temp[1], temp[2], temp[3], temp[0]}
			for j := range temp {
				temp[j] = sBox[temp[j]]
			}
			temp[0] ^= rcon[i/4]
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-4][j] ^ temp[j]
		}
	}

	sched := &spnSchedule{}
	for round := 0; round <= spnRounds; round++ {
		for c := 0; c < 4; c++ {
			copy(sched.roundKeys[round][4*c:4*c+4], w[4*round+c][:])
		}
	}
	return sched
}

func (s *spnSchedule) encryptBlock(dst, src []byte) {
	var st [SPNBlockSize]byte
	copy(st[:], src)

	addRoundKey(&st, &s.roundKeys[0])
	for round := 1; round < spnRounds; round++ {
		subBytes(&st)
		shiftRows(&st)
		mixColumns(&st)
		addRoundKey(&st, &s.roundKeys[round])
	}
	// The final round omits MixColumns; that omission is what makes the
	// encrypt and decrypt pipelines structurally symmetric.
	subBytes(&st)
	shiftRows(&st)
	addRoundKey(&st, &s.roundKeys[spnRounds])

	copy(dst, st[:])
}

func (s *spnSchedule) decryptBlock(dst, src []byte) {
	var st [SPNBlockSize]byte
	copy(st[:], src)

	addRoundKey(&st, &s.roundKeys[spnRounds])
	for round := spnRounds - 1; round > 0; round-- {
		invShiftRows(&st)
		invSubBytes(&st)
		addRoundKey(&st, &s.roundKeys[round])
		invMixColumns(&st)
	}
	invShiftRows(&st)
	invSubBytes(&st)
	addRoundKey(&st, &s.roundKeys[0])

	copy(dst, st[:])
}

func addRoundKey(st, roundKey *[SPNBlockSize]byte) {
	for i := range st {
		st[i] ^= roundKey[i]
	}
}

func subBytes(st *[SPNBlockSize]byte) {
	for i := range st {
		st[i] = sBox[st[i]]
	}
}

func invSubBytes(st *[SPNBlockSize]byte) {
	for i := range st {
		st[i] = invSBox[st[i]]
	}
}

// shiftRows cyclically shifts row r left by r positions.
func shiftRows(st *[SPNBlockSize]byte) {
	var out [SPNBlockSize]byte
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r+4*c] = st[r+4*((c+r)%4)]
		}
	}
	*st = out
}

func invShiftRows(st *[SPNBlockSize]byte) {
	var out [SPNBlockSize]byte
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r+4*c] = st[r+4*((c+4-r)%4)]
		}
	}
	*st = out
}

// mixColumns multiplies each column by the fixed {02,03,01,01} circulant
// matrix over GF(2^8).
func mixColumns(st *[SPNBlockSize]byte) {
	for c := 0; c < 4; c++ {
		col := st[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gfMul(0x02, a0) ^ gfMul(0x03, a1) ^ a2 ^ a3
		col[1] = a0 ^ gfMul(0x02, a1) ^ gfMul(0x03, a2) ^ a3
		col[2] = a0 ^ a1 ^ gfMul(0x02, a2) ^ gfMul(0x03, a3)
		col[3] = gfMul(0x03, a0) ^ a1 ^ a2 ^ gfMul(0x02, a3)
	}
}

// invMixColumns applies the inverse {0e,0b,0d,09} matrix.
func invMixColumns(st *[SPNBlockSize]byte) {
	for c := 0; c < 4; c++ {
		col := st[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gfMul(0x0E, a0) ^ gfMul(0x0B, a1) ^ gfMul(0x0D, a2) ^ gfMul(0x09, a3)
		col[1] = gfMul(0x09, a0) ^ gfMul(0x0E, a1) ^ gfMul(0x0B, a2) ^ gfMul(0x0D, a3)
		col[2] = gfMul(0x0D, a0) ^ gfMul(0x09, a1) ^ gfMul(0x0E, a2) ^ gfMul(0x0B, a3)
		col[3] = gfMul(0x0B, a0) ^ gfMul(0x0D, a1) ^ gfMul(0x09, a2) ^ gfMul(0x0E, a3)
	}
}
