// Package encryption implements the toolbox's block cipher engines: a
// 64-bit 16-round Feistel network and a 128-bit 10-round
// substitution-permutation network. Both expose the same string-level
// encrypt/decrypt contract over hex keys and uppercase hex ciphertext.
package encryption

import "errors"

// Cipher is the uniform contract every algorithm in the toolbox implements.
type Cipher interface {
	// Encrypt encrypts plaintext with the given key
	Encrypt(plaintext, key string) (string, error)

	// Decrypt decrypts ciphertext with the given key
	Decrypt(ciphertext, key string) (string, error)

	// Name returns the algorithm name
	Name() string
}

// BlockCipher extends Cipher with block-level metadata.
type BlockCipher interface {
	Cipher

	// BlockSize returns the block size in bytes
	BlockSize() int

	// KeySize returns the required key length in hex characters
	KeySize() int
}

var (
	// ErrInvalidKeyFormat is returned when a key is not exactly the
	// required number of hex characters. Raised before any processing.
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrInvalidCiphertextFormat is returned when ciphertext is not hex or
	// its length is not a multiple of the block granularity.
	ErrInvalidCiphertextFormat = errors.New("invalid ciphertext format")
)
