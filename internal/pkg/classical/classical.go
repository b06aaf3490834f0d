// Package classical implements the toolbox's alphabet ciphers. Every cipher
// satisfies the same Encrypt/Decrypt contract as the block engines; keys are
// small strings (an offset, a matrix, a keyword) rather than hex material.
package classical

import (
	"fmt"
	"strconv"
	"strings"

	"cipherlab/internal/pkg/encryption"
)

const alphabetSize = 26

// mod reduces v into [0, 26).
func mod(v int) int {
	return ((v % alphabetSize) + alphabetSize) % alphabetSize
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// modInverse returns the multiplicative inverse of a modulo 26.
func modInverse(a int) (int, bool) {
	a = mod(a)
	for i := 1; i < alphabetSize; i++ {
		if a*i%alphabetSize == 1 {
			return i, true
		}
	}
	return 0, false
}

// mapLetters applies f to the alphabet index of each letter, preserving case
// and passing other characters through.
func mapLetters(text string, f func(int) int) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			sb.WriteRune('A' + rune(f(int(r-'A'))))
		case r >= 'a' && r <= 'z':
			sb.WriteRune('a' + rune(f(int(r-'a'))))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// onlyLetters uppercases text and drops everything outside A-Z.
func onlyLetters(text string) []byte {
	var out []byte
	for _, r := range strings.ToUpper(text) {
		if r >= 'A' && r <= 'Z' {
			out = append(out, byte(r))
		}
	}
	return out
}

func parseInts(key string, want int) ([]int, error) {
	parts := strings.Split(key, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("%w: expected %d comma-separated integers", encryption.ErrInvalidKeyFormat, want)
	}
	out := make([]int, want)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", encryption.ErrInvalidKeyFormat, p)
		}
		out[i] = v
	}
	return out, nil
}
