// Package padding implements PKCS#7-style block padding.
package padding

import (
	"errors"
	"fmt"
)

// Policy controls how Unpad treats a malformed trailing byte.
type Policy int

const (
	// Lenient returns the input unchanged when the trailing byte is not a
	// plausible pad length. This is the historical toolbox behavior and the
	// engine default.
	Lenient Policy = iota

	// Strict rejects any padding whose trailing byte is out of range or
	// whose pad bytes are inconsistent.
	Strict
)

// Padder is the padding contract shared by the block cipher engines.
type Padder interface {
	Pad(data []byte, blockSize int) []byte
	Unpad(data []byte, blockSize int) ([]byte, error)
	Name() string
}

// PKCS7 pads with n bytes of value n, n in [1, blockSize]. Input already at
// a block boundary receives one full extra block.
type PKCS7 struct {
	Policy Policy
}

func (p PKCS7) Name() string {
	return "PKCS7"
}

func (p PKCS7) Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func (p PKCS7) Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		if p.Policy == Strict {
			return nil, errors.New("padding: empty input")
		}
		return data, nil
	}

	n := int(data[len(data)-1])
	if n < 1 || n > blockSize || n > len(data) {
		if p.Policy == Strict {
			return nil, fmt.Errorf("padding: invalid trailing byte %d", n)
		}
		// No plausible padding present; hand the bytes back untouched.
		return data, nil
	}

	if p.Policy == Strict {
		for i := len(data) - n; i < len(data); i++ {
			if data[i] != byte(n) {
				return nil, errors.New("padding: inconsistent pad bytes")
			}
		}
	}

	return data[:len(data)-n], nil
}
