package encryption

import "encoding/binary"

const (
	// FeistelBlockSize is the block size in bytes (64 bits).
	FeistelBlockSize = 8
	// FeistelKeySize is the key length in hex characters (64 bits, 56
	// effective after the parity bits are discarded).
	FeistelKeySize = 16

	feistelRounds = 16
)

// Permutation tables use the cipher's conventional 1-based bit numbering,
// counted from the most significant bit.

// Initial permutation (IP)
var initialPermutation = [64]int{
	58, 50, 42, 34, 26, 18, 10, 2,
	60, 52, 44, 36, 28, 20, 12, 4,
	62, 54, 46, 38, 30, 22, 14, 6,
	64, 56, 48, 40, 32, 24, 16, 8,
	57, 49, 41, 33, 25, 17, 9, 1,
	59, 51, 43, 35, 27, 19, 11, 3,
	61, 53, 45, 37, 29, 21, 13, 5,
	63, 55, 47, 39, 31, 23, 15, 7,
}

// Final permutation (FP), the inverse of IP
var finalPermutation = [64]int{
	40, 8, 48, 16, 56, 24, 64, 32,
	39, 7, 47, 15, 55, 23, 63, 31,
	38, 6, 46, 14, 54, 22, 62, 30,
	37, 5, 45, 13, 53, 21, 61, 29,
	36, 4, 44, 12, 52, 20, 60, 28,
	35, 3, 43, 11, 51, 19, 59, 27,
	34, 2, 42, 10, 50, 18, 58, 26,
	33, 1, 41, 9, 49, 17, 57, 25,
}

// Expansion permutation (E), 32 -> 48 bits
var expansionTable = [48]int{
	32, 1, 2, 3, 4, 5,
	4, 5, 6, 7, 8, 9,
	8, 9, 10, 11, 12, 13,
	12, 13, 14, 15, 16, 17,
	16, 17, 18, 19, 20, 21,
	20, 21, 22, 23, 24, 25,
	24, 25, 26, 27, 28, 29,
	28, 29, 30, 31, 32, 1,
}

// P-box permutation on the substitution output
var pBox = [32]int{
	16, 7, 20, 21, 29, 12, 28, 17,
	1, 15, 23, 26, 5, 18, 31, 10,
	2, 8, 24, 14, 32, 27, 3, 9,
	19, 13, 30, 6, 22, 11, 4, 25,
}

// Eight 4x16 substitution boxes, one per 6-bit group
var sBoxes = [8][4][16]byte{
	{
		{14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7},
		{0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8},
		{4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0},
		{15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13},
	},
	{
		{15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10},
		{3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5},
		{0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15},
		{13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9},
	},
	{
		{10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8},
		{13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1},
		{13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7},
		{1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12},
	},
	{
		{7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15},
		{13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9},
		{10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4},
		{3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14},
	},
	{
		{2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9},
		{14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6},
		{4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14},
		{11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3},
	},
	{
		{12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11},
		{10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8},
		{9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6},
		{4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13},
	},
	{
		{4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1},
		{13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6},
		{1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2},
		{6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12},
	},
	{
		{13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7},
		{1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2},
		{7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8},
		{2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11},
	},
}

// Key selection permutation PC-1, 64 -> 56 bits (drops the parity bits)
var pc1 = [56]int{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

// Key selection permutation PC-2, 56 -> 48 bits
var pc2 = [48]int{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

// Left-rotation amounts per round for the C/D key halves
var shiftTable = [16]uint{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

// permuteBits reorders the low width bits of v according to table. Table
// entries are 1-based positions counted from the most significant input bit.
func permuteBits(v uint64, width uint, table []int) uint64 {
	var out uint64
	for _, pos := range table {
		out = out<<1 | (v>>(width-uint(pos)))&1
	}
	return out
}

// rotateLeft28 cyclically left-rotates a 28-bit value
func rotateLeft28(v uint32, shifts uint) uint32 {
	const mask = (1 << 28) - 1
	return ((v << shifts) | (v >> (28 - shifts))) & mask
}

// Feistel is the 64-bit block cipher engine.
type Feistel struct{}

// NewFeistel creates the Feistel engine. It is stateless; key material is
// derived per call.
func NewFeistel() *Feistel {
	return &Feistel{}
}

func (f *Feistel) Name() string {
	return "FEISTEL64"
}

func (f *Feistel) BlockSize() int {
	return FeistelBlockSize
}

func (f *Feistel) KeySize() int {
	return FeistelKeySize
}

func (f *Feistel) Encrypt(plaintext, key string) (string, error) {
	return encryptText(f, plaintext, key)
}

func (f *Feistel) Decrypt(ciphertext, key string) (string, error) {
	return decryptText(f, ciphertext, key)
}

func (f *Feistel) schedule(key []byte) blockSchedule {
	return &feistelSchedule{subkeys: expandFeistelKey(binary.BigEndian.Uint64(key))}
}

type feistelSchedule struct {
	subkeys [feistelRounds]uint64 // 48 significant bits each
}

func (s *feistelSchedule) encryptBlock(dst, src []byte) {
	v := binary.BigEndian.Uint64(src)
	binary.BigEndian.PutUint64(dst, processFeistelBlock(v, &s.subkeys, false))
}

// decryptBlock runs the identical transform with the subkey order reversed.
func (s *feistelSchedule) decryptBlock(dst, src []byte) {
	v := binary.BigEndian.Uint64(src)
	binary.BigEndian.PutUint64(dst, processFeistelBlock(v, &s.subkeys, true))
}

// expandFeistelKey derives the 16 round subkeys: PC-1 selection, then a
// left-to-right fold where the 28-bit C/D halves carry their rotation state
// across rounds, each round emitting 48 bits through PC-2.
func expandFeistelKey(key uint64) [feistelRounds]uint64 {
	v := permuteBits(key, 64, pc1[:])
	c := uint32(v>>28) & 0x0FFFFFFF
	d := uint32(v) & 0x0FFFFFFF

	var subkeys [feistelRounds]uint64
	for round := 0; round < feistelRounds; round++ {
		c = rotateLeft28(c, shiftTable[round])
		d = rotateLeft28(d, shiftTable[round])
		subkeys[round] = permuteBits(uint64(c)<<28|uint64(d), 56, pc2[:])
	}
	return subkeys
}

// feistelRound is the round function F: expand R to 48 bits, mix in the
// subkey, substitute eight 6-bit groups down to 4 bits each, permute.
func feistelRound(r uint32, subkey uint64) uint32 {
	x := permuteBits(uint64(r), 32, expansionTable[:]) ^ subkey

	var sub uint32
	for i := 0; i < 8; i++ {
		group := byte(x >> (42 - 6*i) & 0x3F)
		row := (group>>4)&2 | group&1
		col := (group >> 1) & 0xF
		sub = sub<<4 | uint32(sBoxes[i][row][col])
	}

	return uint32(permuteBits(uint64(sub), 32, pBox[:]))
}

func processFeistelBlock(block uint64, subkeys *[feistelRounds]uint64, reversed bool) uint64 {
	v := permuteBits(block, 64, initialPermutation[:])
	l := uint32(v >> 32)
	r := uint32(v)

	for i := 0; i < feistelRounds; i++ {
		k := subkeys[i]
		if reversed {
			k = subkeys[feistelRounds-1-i]
		}
		l, r = r, l^feistelRound(r, k)
	}

	// Final swap: the halves are recombined as (R, L).
	return permuteBits(uint64(r)<<32|uint64(l), 64, finalPermutation[:])
}
