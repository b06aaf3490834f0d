package classical

import (
	"fmt"
	"sort"
	"strings"

	"cipherlab/internal/pkg/encryption"
)

// Columnar writes the text row by row under a keyword and reads the columns
// in alphabetical keyword order. The grid is padded with X; duplicate
// keyword letters rank left to right.
type Columnar struct{}

func NewColumnar() *Columnar {
	return &Columnar{}
}

func (c *Columnar) Name() string {
	return "COLUMNAR"
}

func (c *Columnar) Encrypt(plaintext, key string) (string, error) {
	order, err := parseColumnarKey(key)
	if err != nil {
		return "", err
	}

	cols := len(order)
	runes := []rune(plaintext)
	for len(runes)%cols != 0 {
		runes = append(runes, 'X')
	}
	rows := len(runes) / cols

	out := make([]rune, 0, len(runes))
	for _, col := range order {
		for row := 0; row < rows; row++ {
			out = append(out, runes[row*cols+col])
		}
	}
	return string(out), nil
}

func (c *Columnar) Decrypt(ciphertext, key string) (string, error) {
	order, err := parseColumnarKey(key)
	if err != nil {
		return "", err
	}

	cols := len(order)
	runes := []rune(ciphertext)
	if len(runes)%cols != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of the key width %d",
			encryption.ErrInvalidCiphertextFormat, len(runes), cols)
	}
	rows := len(runes) / cols

	out := make([]rune, len(runes))
	pos := 0
	for _, col := range order {
		for row := 0; row < rows; row++ {
			out[row*cols+col] = runes[pos]
			pos++
		}
	}
	return string(out), nil
}

// parseColumnarKey returns the column indices in read order.
func parseColumnarKey(key string) ([]int, error) {
	letters := strings.ToUpper(strings.TrimSpace(key))
	if len(letters) < 2 {
		return nil, fmt.Errorf("%w: keyword must have at least 2 characters", encryption.ErrInvalidKeyFormat)
	}

	order := make([]int, len(letters))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return letters[order[a]] < letters[order[b]]
	})
	return order, nil
}
