package publickey

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"cipherlab/internal/pkg/bytesutil"
	"cipherlab/internal/pkg/encryption"
)

// Curve y^2 = x^3 + ax + b over GF(p) with base point G. The textbook
// E_751(-1, 188) curve; p > 255 so a message byte fits in one coordinate.
var (
	eccP = big.NewInt(751)
	eccA = big.NewInt(750) // -1 mod 751
	eccB = big.NewInt(188)
	eccG = point{x: big.NewInt(0), y: big.NewInt(376)}
)

const eccDigits = 4 // hex digits per coordinate

type point struct {
	x, y *big.Int
	inf  bool
}

// ECElGamal is elliptic-curve ElGamal with additive masking: each byte m is
// sent as (kG, (m + x(kQ)) mod p) where Q = dG is the receiver's public
// point. The key string is the private scalar d in decimal.
type ECElGamal struct{}

func NewECElGamal() *ECElGamal {
	return &ECElGamal{}
}

func (e *ECElGamal) Name() string {
	return "ECELGAMAL"
}

func (e *ECElGamal) Encrypt(plaintext, key string) (string, error) {
	d, err := parseExponentKey(key, eccP)
	if err != nil {
		return "", err
	}
	q := scalarMult(d, eccG)
	if q.inf {
		return "", fmt.Errorf("%w: scalar maps the base point to infinity", encryption.ErrInvalidKeyFormat)
	}

	kMax := new(big.Int).Sub(eccP, big.NewInt(1))
	var sb strings.Builder
	for _, m := range bytesutil.TextToBytes(plaintext) {
		var c1, shared point
		for {
			k, err := rand.Int(rand.Reader, kMax)
			if err != nil {
				return "", fmt.Errorf("ecelgamal: drawing ephemeral key: %w", err)
			}
			k.Add(k, big.NewInt(1))

			c1 = scalarMult(k, eccG)
			shared = scalarMult(k, q)
			if !c1.inf && !shared.inf {
				break
			}
		}

		c2 := new(big.Int).Add(big.NewInt(int64(m)), shared.x)
		c2.Mod(c2, eccP)
		fmt.Fprintf(&sb, "%0*X%0*X%0*X", eccDigits, c1.x, eccDigits, c1.y, eccDigits, c2)
	}
	return sb.String(), nil
}

func (e *ECElGamal) Decrypt(ciphertext, key string) (string, error) {
	d, err := parseExponentKey(key, eccP)
	if err != nil {
		return "", err
	}

	vals, err := parseFieldValues(ciphertext, 3, eccDigits, eccP)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, len(vals)/3)
	for i := 0; i < len(vals); i += 3 {
		c1 := point{x: vals[i], y: vals[i+1]}
		if !onCurve(c1) {
			return "", fmt.Errorf("%w: (%s, %s) is not on the curve", encryption.ErrInvalidCiphertextFormat, c1.x, c1.y)
		}
		shared := scalarMult(d, c1)
		if shared.inf {
			return "", fmt.Errorf("%w: shared point at infinity", encryption.ErrInvalidCiphertextFormat)
		}

		m := new(big.Int).Sub(vals[i+2], shared.x)
		m.Mod(m, eccP)
		if m.Cmp(big.NewInt(256)) >= 0 {
			return "", fmt.Errorf("%w: decrypted value %s is not a byte", encryption.ErrInvalidCiphertextFormat, m)
		}
		out = append(out, byte(m.Int64()))
	}
	return bytesutil.BytesToText(out), nil
}

func onCurve(p point) bool {
	if p.inf {
		return false
	}
	lhs := new(big.Int).Mul(p.y, p.y)
	lhs.Mod(lhs, eccP)
	rhs := new(big.Int).Mul(p.x, p.x)
	rhs.Mul(rhs, p.x)
	rhs.Add(rhs, new(big.Int).Mul(eccA, p.x))
	rhs.Add(rhs, eccB)
	rhs.Mod(rhs, eccP)
	return lhs.Cmp(rhs) == 0
}

// pointAdd implements the affine group law; the point at infinity is the
// identity.
func pointAdd(p, q point) point {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}

	var lambda *big.Int
	if p.x.Cmp(q.x) == 0 {
		sum := new(big.Int).Add(p.y, q.y)
		sum.Mod(sum, eccP)
		if sum.Sign() == 0 {
			return point{inf: true} // p == -q
		}
		// Tangent slope (3x^2 + a) / 2y
		num := new(big.Int).Mul(p.x, p.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, eccA)
		den := new(big.Int).Lsh(p.y, 1)
		lambda = num.Mul(num, new(big.Int).ModInverse(den.Mod(den, eccP), eccP))
	} else {
		num := new(big.Int).Sub(q.y, p.y)
		den := new(big.Int).Sub(q.x, p.x)
		den.Mod(den, eccP)
		lambda = num.Mul(num, new(big.Int).ModInverse(den, eccP))
	}
	lambda.Mod(lambda, eccP)

	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, p.x)
	x.Sub(x, q.x)
	x.Mod(x, eccP)

	y := new(big.Int).Sub(p.x, x)
	y.Mul(y, lambda)
	y.Sub(y, p.y)
	y.Mod(y, eccP)

	return point{x: x, y: y}
}

// scalarMult is double-and-add.
func scalarMult(k *big.Int, p point) point {
	result := point{inf: true}
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = pointAdd(result, addend)
		}
		addend = pointAdd(addend, addend)
	}
	return result
}
