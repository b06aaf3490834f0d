package classical

import (
	"fmt"

	"cipherlab/internal/pkg/encryption"
)

// Hill transforms letter digraphs by a 2x2 matrix over Z26. Key is the
// matrix row-major, "a,b,c,d"; its determinant must be invertible mod 26.
// Input is reduced to uppercase letters and padded with X to even length.
type Hill struct{}

func NewHill() *Hill {
	return &Hill{}
}

func (h *Hill) Name() string {
	return "HILL"
}

func (h *Hill) Encrypt(plaintext, key string) (string, error) {
	m, err := parseHillKey(key)
	if err != nil {
		return "", err
	}
	return hillTransform(plaintext, m), nil
}

func (h *Hill) Decrypt(ciphertext, key string) (string, error) {
	m, err := parseHillKey(key)
	if err != nil {
		return "", err
	}
	return hillTransform(ciphertext, invertHillKey(m)), nil
}

func hillTransform(text string, m [4]int) string {
	letters := onlyLetters(text)
	if len(letters)%2 != 0 {
		letters = append(letters, 'X')
	}

	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i += 2 {
		p1 := int(letters[i] - 'A')
		p2 := int(letters[i+1] - 'A')
		out[i] = 'A' + byte(mod(m[0]*p1+m[1]*p2))
		out[i+1] = 'A' + byte(mod(m[2]*p1+m[3]*p2))
	}
	return string(out)
}

func parseHillKey(key string) ([4]int, error) {
	vals, err := parseInts(key, 4)
	if err != nil {
		return [4]int{}, err
	}
	m := [4]int{mod(vals[0]), mod(vals[1]), mod(vals[2]), mod(vals[3])}
	det := mod(m[0]*m[3] - m[1]*m[2])
	if _, ok := modInverse(det); !ok {
		return [4]int{}, fmt.Errorf("%w: matrix determinant %d is not invertible mod 26", encryption.ErrInvalidKeyFormat, det)
	}
	return m, nil
}

func invertHillKey(m [4]int) [4]int {
	det := mod(m[0]*m[3] - m[1]*m[2])
	detInv, _ := modInverse(det)
	return [4]int{
		mod(detInv * m[3]), mod(-detInv * m[1]),
		mod(-detInv * m[2]), mod(detInv * m[0]),
	}
}
