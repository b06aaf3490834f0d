package classical

import (
	"fmt"
	"strconv"

	"cipherlab/internal/pkg/encryption"
)

// RailFence writes the text in a zigzag over N rails and reads it off row by
// row. Key is the rail count as a decimal integer, at least 2.
type RailFence struct{}

func NewRailFence() *RailFence {
	return &RailFence{}
}

func (rf *RailFence) Name() string {
	return "RAILFENCE"
}

func (rf *RailFence) Encrypt(plaintext, key string) (string, error) {
	rails, err := parseRailKey(key)
	if err != nil {
		return "", err
	}
	runes := []rune(plaintext)
	if len(runes) <= 1 {
		return plaintext, nil
	}

	rows := make([][]rune, rails)
	for i, r := range runes {
		row := railRow(i, rails)
		rows[row] = append(rows[row], r)
	}

	out := make([]rune, 0, len(runes))
	for _, row := range rows {
		out = append(out, row...)
	}
	return string(out), nil
}

func (rf *RailFence) Decrypt(ciphertext, key string) (string, error) {
	rails, err := parseRailKey(key)
	if err != nil {
		return "", err
	}
	runes := []rune(ciphertext)
	if len(runes) <= 1 {
		return ciphertext, nil
	}

	// Count how many characters land on each rail, then slice the
	// ciphertext into rails and replay the zigzag.
	counts := make([]int, rails)
	for i := range runes {
		counts[railRow(i, rails)]++
	}

	rows := make([][]rune, rails)
	pos := 0
	for r := 0; r < rails; r++ {
		rows[r] = runes[pos : pos+counts[r]]
		pos += counts[r]
	}

	out := make([]rune, len(runes))
	next := make([]int, rails)
	for i := range out {
		row := railRow(i, rails)
		out[i] = rows[row][next[row]]
		next[row]++
	}
	return string(out), nil
}

// railRow gives the rail index of position i in the zigzag.
func railRow(i, rails int) int {
	cycle := 2 * (rails - 1)
	phase := i % cycle
	if phase < rails {
		return phase
	}
	return cycle - phase
}

func parseRailKey(key string) (int, error) {
	rails, err := strconv.Atoi(key)
	if err != nil || rails < 2 {
		return 0, fmt.Errorf("%w: rail count must be an integer >= 2", encryption.ErrInvalidKeyFormat)
	}
	return rails, nil
}
