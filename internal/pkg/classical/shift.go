package classical

import (
	"fmt"
	"strconv"

	"cipherlab/internal/pkg/encryption"
)

// Shift is the Caesar cipher: c = (p + k) mod 26. Key is the offset as a
// decimal integer.
type Shift struct{}

func NewShift() *Shift {
	return &Shift{}
}

func (s *Shift) Name() string {
	return "SHIFT"
}

func (s *Shift) Encrypt(plaintext, key string) (string, error) {
	k, err := parseShiftKey(key)
	if err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(p int) int { return mod(p + k) }), nil
}

func (s *Shift) Decrypt(ciphertext, key string) (string, error) {
	k, err := parseShiftKey(key)
	if err != nil {
		return "", err
	}
	return mapLetters(ciphertext, func(c int) int { return mod(c - k) }), nil
}

func parseShiftKey(key string) (int, error) {
	k, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: shift key must be an integer", encryption.ErrInvalidKeyFormat)
	}
	return k, nil
}
