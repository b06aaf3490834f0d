package padding

import (
	"bytes"
	"testing"
)

func TestPKCS7Pad(t *testing.T) {
	p := PKCS7{}

	tests := []struct {
		name     string
		input    []byte
		wantLen  int
		wantByte byte
	}{
		{"partial block", []byte("HELLO"), 8, 3},
		{"one short", []byte("1234567"), 8, 1},
		{"exact boundary gets full block", []byte("12345678"), 16, 8},
		{"empty input gets full block", nil, 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := p.Pad(tt.input, 8)
			if len(padded) != tt.wantLen {
				t.Fatalf("padded length = %d, want %d", len(padded), tt.wantLen)
			}
			for i := len(tt.input); i < len(padded); i++ {
				if padded[i] != tt.wantByte {
					t.Fatalf("pad byte at %d = %#02x, want %#02x", i, padded[i], tt.wantByte)
				}
			}
			if !bytes.Equal(padded[:len(tt.input)], tt.input) {
				t.Fatalf("padding modified the data prefix")
			}
		})
	}
}

func TestPKCS7RoundTrip(t *testing.T) {
	for _, policy := range []Policy{Lenient, Strict} {
		p := PKCS7{Policy: policy}
		for _, data := range [][]byte{nil, []byte("a"), []byte("HELLO"), []byte("12345678")} {
			unpadded, err := p.Unpad(p.Pad(data, 8), 8)
			if err != nil {
				t.Fatalf("Unpad failed: %v", err)
			}
			if !bytes.Equal(unpadded, data) {
				t.Fatalf("round-trip of %q = %q", data, unpadded)
			}
		}
	}
}

// Lenient unpadding hands malformed input back untouched instead of
// failing.
func TestPKCS7LenientPassthrough(t *testing.T) {
	p := PKCS7{Policy: Lenient}

	malformed := [][]byte{
		{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x00}, // pad length 0
		{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0xFF}, // pad length > block size
		{},
	}
	for _, data := range malformed {
		out, err := p.Unpad(data, 8)
		if err != nil {
			t.Fatalf("lenient Unpad returned error: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("lenient Unpad changed malformed input: %x -> %x", data, out)
		}
	}
}

func TestPKCS7StrictRejects(t *testing.T) {
	p := PKCS7{Policy: Strict}

	malformed := [][]byte{
		{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0x00}, // pad length 0
		{0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47, 0xFF}, // pad length > block size
		{0x41, 0x42, 0x43, 0x44, 0x45, 0x02, 0x03, 0x03}, // inconsistent pad bytes
		{},
	}
	for _, data := range malformed {
		if _, err := p.Unpad(data, 8); err == nil {
			t.Errorf("strict Unpad accepted malformed input %x", data)
		}
	}
}
