package encryption

import (
	"fmt"
	"regexp"

	"cipherlab/internal/pkg/bytesutil"
	"cipherlab/internal/pkg/encryption/padding"
)

// blockSchedule is the per-call expanded key material of an engine. A fresh
// schedule is derived on every encrypt/decrypt invocation; nothing persists
// between calls.
type blockSchedule interface {
	encryptBlock(dst, src []byte)
	decryptBlock(dst, src []byte)
}

// blockEngine is implemented by the Feistel and SPN engines.
type blockEngine interface {
	BlockCipher
	schedule(key []byte) blockSchedule
}

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]*$`)

// Unpadding is deliberately lenient so historical ciphertext keeps
// round-tripping byte-for-byte; see the padding package for the strict mode.
var enginePadder = padding.PKCS7{Policy: padding.Lenient}

func validateKey(key string, hexChars int) ([]byte, error) {
	if len(key) != hexChars || !hexPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: key must be exactly %d hex characters", ErrInvalidKeyFormat, hexChars)
	}
	return bytesutil.HexToBytes(key)
}

// encryptText pads plaintext bytes to the block boundary and transforms each
// block independently (electronic codebook ordering, no chaining).
func encryptText(e blockEngine, plaintext, key string) (string, error) {
	keyBytes, err := validateKey(key, e.KeySize())
	if err != nil {
		return "", err
	}

	bs := e.BlockSize()
	padded := enginePadder.Pad(bytesutil.TextToBytes(plaintext), bs)

	sched := e.schedule(keyBytes)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += bs {
		sched.encryptBlock(out[i:i+bs], padded[i:i+bs])
	}

	return bytesutil.BytesToHex(out), nil
}

func decryptText(e blockEngine, ciphertext, key string) (string, error) {
	keyBytes, err := validateKey(key, e.KeySize())
	if err != nil {
		return "", err
	}

	bs := e.BlockSize()
	if !hexPattern.MatchString(ciphertext) || len(ciphertext)%(2*bs) != 0 {
		return "", fmt.Errorf("%w: ciphertext must be hex with length a multiple of %d characters",
			ErrInvalidCiphertextFormat, 2*bs)
	}

	data, err := bytesutil.HexToBytes(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertextFormat, err)
	}

	sched := e.schedule(keyBytes)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		sched.decryptBlock(out[i:i+bs], data[i:i+bs])
	}

	unpadded, err := enginePadder.Unpad(out, bs)
	if err != nil {
		return "", err
	}
	return bytesutil.BytesToText(unpadded), nil
}
