package classical

import (
	"fmt"
	"strings"

	"cipherlab/internal/pkg/encryption"
)

// Playfair encrypts letter digraphs against a 5x5 keyword square with J
// folded into I. An X is inserted between doubled letters and appended to an
// odd-length tail; decryption leaves those X's in place.
type Playfair struct{}

func NewPlayfair() *Playfair {
	return &Playfair{}
}

func (p *Playfair) Name() string {
	return "PLAYFAIR"
}

func (p *Playfair) Encrypt(plaintext, key string) (string, error) {
	square, pos, err := buildPlayfairSquare(key)
	if err != nil {
		return "", err
	}
	return playfairTransform(preparePlayfairText(plaintext), square, pos, 1), nil
}

func (p *Playfair) Decrypt(ciphertext, key string) (string, error) {
	square, pos, err := buildPlayfairSquare(key)
	if err != nil {
		return "", err
	}
	letters := preparePlayfairText(ciphertext)
	if len(letters)%2 != 0 {
		return "", fmt.Errorf("%w: digraph cipher needs an even letter count", encryption.ErrInvalidCiphertextFormat)
	}
	return playfairTransform(letters, square, pos, 4), nil
}

// preparePlayfairText reduces to uppercase letters with J->I and splits into
// digraphs, inserting X between doubles and at an odd tail.
func preparePlayfairText(text string) []byte {
	letters := onlyLetters(text)
	for i := range letters {
		if letters[i] == 'J' {
			letters[i] = 'I'
		}
	}

	var out []byte
	for i := 0; i < len(letters); i++ {
		out = append(out, letters[i])
		if len(out)%2 == 1 && i+1 < len(letters) && letters[i+1] == letters[i] {
			out = append(out, 'X')
		}
	}
	if len(out)%2 != 0 {
		out = append(out, 'X')
	}
	return out
}

// playfairTransform applies the digraph rules; shift 1 encrypts, shift 4
// (== -1 mod 5) decrypts.
func playfairTransform(letters []byte, square [25]byte, pos map[byte][2]int, shift int) string {
	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i += 2 {
		a, b := pos[letters[i]], pos[letters[i+1]]
		var na, nb [2]int
		switch {
		case a[0] == b[0]: // same row: step along the row
			na = [2]int{a[0], (a[1] + shift) % 5}
			nb = [2]int{b[0], (b[1] + shift) % 5}
		case a[1] == b[1]: // same column: step down the column
			na = [2]int{(a[0] + shift) % 5, a[1]}
			nb = [2]int{(b[0] + shift) % 5, b[1]}
		default: // rectangle: swap columns
			na = [2]int{a[0], b[1]}
			nb = [2]int{b[0], a[1]}
		}
		out[i] = square[na[0]*5+na[1]]
		out[i+1] = square[nb[0]*5+nb[1]]
	}
	return string(out)
}

func buildPlayfairSquare(key string) ([25]byte, map[byte][2]int, error) {
	var square [25]byte
	seen := make(map[byte]bool)
	n := 0

	fill := func(c byte) {
		if c == 'J' {
			c = 'I'
		}
		if !seen[c] {
			seen[c] = true
			square[n] = c
			n++
		}
	}

	for _, r := range strings.ToUpper(key) {
		if r >= 'A' && r <= 'Z' {
			fill(byte(r))
		}
	}
	if n == 0 {
		return square, nil, fmt.Errorf("%w: keyword must contain at least one letter", encryption.ErrInvalidKeyFormat)
	}
	for c := byte('A'); c <= 'Z'; c++ {
		fill(c)
	}

	pos := make(map[byte][2]int, 25)
	for i, c := range square {
		pos[c] = [2]int{i / 5, i % 5}
	}
	return square, pos, nil
}
