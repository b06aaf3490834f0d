// Package bytesutil holds the text/byte/hex conversions shared by every
// cipher in the toolbox.
package bytesutil

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes decodes a hex string in 2-character groups. Input is
// case-insensitive.
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bytesutil: %w", err)
	}
	return b, nil
}

// BytesToHex encodes bytes as uppercase hex.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// TextToBytes maps each character to its single-byte code point. Characters
// above U+00FF are truncated to their low byte, so only Latin-1 text
// round-trips through the ciphers. See TextToBytesUTF8 for the opt-in
// multi-byte mode.
func TextToBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}

// BytesToText is the inverse of TextToBytes: each byte becomes one code
// point in U+0000..U+00FF.
func BytesToText(b []byte) string {
	rs := make([]rune, len(b))
	for i, v := range b {
		rs[i] = rune(v)
	}
	return string(rs)
}

// TextToBytesUTF8 encodes text as UTF-8 bytes. Not used by the engine
// defaults: switching the default would change ciphertext for existing
// vectors.
func TextToBytesUTF8(s string) []byte {
	return []byte(s)
}

// BytesToTextUTF8 decodes UTF-8 bytes back to text.
func BytesToTextUTF8(b []byte) string {
	return string(b)
}
