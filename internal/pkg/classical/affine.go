package classical

import (
	"fmt"

	"cipherlab/internal/pkg/encryption"
)

// Affine is c = (a*p + b) mod 26 with key "a,b"; a must be coprime with 26
// so the transform is invertible.
type Affine struct{}

func NewAffine() *Affine {
	return &Affine{}
}

func (a *Affine) Name() string {
	return "AFFINE"
}

func (a *Affine) Encrypt(plaintext, key string) (string, error) {
	ka, kb, _, err := parseAffineKey(key)
	if err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(p int) int { return mod(ka*p + kb) }), nil
}

func (a *Affine) Decrypt(ciphertext, key string) (string, error) {
	_, kb, aInv, err := parseAffineKey(key)
	if err != nil {
		return "", err
	}
	return mapLetters(ciphertext, func(c int) int { return mod(aInv * (c - kb)) }), nil
}

func parseAffineKey(key string) (a, b, aInv int, err error) {
	vals, err := parseInts(key, 2)
	if err != nil {
		return 0, 0, 0, err
	}
	a, b = mod(vals[0]), mod(vals[1])
	if gcd(a, alphabetSize) != 1 {
		return 0, 0, 0, fmt.Errorf("%w: multiplier %d is not coprime with 26", encryption.ErrInvalidKeyFormat, vals[0])
	}
	aInv, _ = modInverse(a)
	return a, b, aInv, nil
}
