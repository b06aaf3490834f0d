// Package publickey implements the toolbox's public-key toys: ElGamal over
// a small prime field and its elliptic-curve variant. Parameters are
// textbook-sized and provide no security; they exist to demonstrate the
// math.
package publickey

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"cipherlab/internal/pkg/bytesutil"
	"cipherlab/internal/pkg/encryption"
)

// Group parameters: p prime, g a primitive root mod p.
var (
	elgamalP = big.NewInt(2579)
	elgamalG = big.NewInt(2)
)

const elgamalDigits = 4 // hex digits per field value (values < 2579)

// ElGamal encrypts each message byte as a pair (g^k, m*h^k) mod p with a
// fresh random k. The key string is the private exponent x in decimal; the
// public value h = g^x is derived from it on both sides.
type ElGamal struct{}

func NewElGamal() *ElGamal {
	return &ElGamal{}
}

func (e *ElGamal) Name() string {
	return "ELGAMAL"
}

func (e *ElGamal) Encrypt(plaintext, key string) (string, error) {
	x, err := parseExponentKey(key, elgamalP)
	if err != nil {
		return "", err
	}
	h := new(big.Int).Exp(elgamalG, x, elgamalP)

	kMax := new(big.Int).Sub(elgamalP, big.NewInt(2))
	var sb strings.Builder
	for _, m := range bytesutil.TextToBytes(plaintext) {
		k, err := rand.Int(rand.Reader, kMax)
		if err != nil {
			return "", fmt.Errorf("elgamal: drawing ephemeral key: %w", err)
		}
		k.Add(k, big.NewInt(1))

		a := new(big.Int).Exp(elgamalG, k, elgamalP)
		b := new(big.Int).Exp(h, k, elgamalP)
		b.Mul(b, big.NewInt(int64(m))).Mod(b, elgamalP)

		fmt.Fprintf(&sb, "%0*X%0*X", elgamalDigits, a, elgamalDigits, b)
	}
	return sb.String(), nil
}

func (e *ElGamal) Decrypt(ciphertext, key string) (string, error) {
	x, err := parseExponentKey(key, elgamalP)
	if err != nil {
		return "", err
	}

	vals, err := parseFieldValues(ciphertext, 2, elgamalDigits, elgamalP)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, len(vals)/2)
	pMinus2 := new(big.Int).Sub(elgamalP, big.NewInt(2))
	for i := 0; i < len(vals); i += 2 {
		a, b := vals[i], vals[i+1]
		s := new(big.Int).Exp(a, x, elgamalP)
		s.Exp(s, pMinus2, elgamalP) // inverse of a^x, p prime
		m := s.Mul(s, b).Mod(s, elgamalP)
		if m.Cmp(big.NewInt(256)) >= 0 {
			return "", fmt.Errorf("%w: decrypted value %s is not a byte", encryption.ErrInvalidCiphertextFormat, m)
		}
		out = append(out, byte(m.Int64()))
	}
	return bytesutil.BytesToText(out), nil
}

// parseExponentKey reads a decimal private scalar in [1, p-2].
func parseExponentKey(key string, p *big.Int) (*big.Int, error) {
	x, ok := new(big.Int).SetString(strings.TrimSpace(key), 10)
	if !ok || x.Sign() < 1 || x.Cmp(new(big.Int).Sub(p, big.NewInt(1))) >= 0 {
		return nil, fmt.Errorf("%w: key must be a decimal integer in [1, p-2]", encryption.ErrInvalidKeyFormat)
	}
	return x, nil
}

// parseFieldValues splits ciphertext into fixed-width hex field values,
// group values per plaintext byte.
func parseFieldValues(ciphertext string, group, digits int, p *big.Int) ([]*big.Int, error) {
	width := group * digits
	if len(ciphertext)%width != 0 {
		return nil, fmt.Errorf("%w: length must be a multiple of %d hex characters",
			encryption.ErrInvalidCiphertextFormat, width)
	}
	out := make([]*big.Int, 0, len(ciphertext)/digits)
	for i := 0; i < len(ciphertext); i += digits {
		v, ok := new(big.Int).SetString(ciphertext[i:i+digits], 16)
		if !ok || v.Cmp(p) >= 0 {
			return nil, fmt.Errorf("%w: %q is not a field value", encryption.ErrInvalidCiphertextFormat, ciphertext[i:i+digits])
		}
		out = append(out, v)
	}
	return out, nil
}
