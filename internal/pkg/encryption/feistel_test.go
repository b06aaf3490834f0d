package encryption

import (
	"encoding/hex"
	"errors"
	"math/bits"
	"strings"
	"testing"
)

const feistelTestKey = "133457799BBCDFF1"

// The classic worked example for this construction: with key
// 133457799BBCDFF1, block 0123456789ABCDEF encrypts to 85E813540F0AB405.
func TestFeistelKnownBlock(t *testing.T) {
	key, _ := hex.DecodeString(feistelTestKey)
	src, _ := hex.DecodeString("0123456789ABCDEF")
	want := "85E813540F0AB405"

	sched := NewFeistel().schedule(key)

	dst := make([]byte, FeistelBlockSize)
	sched.encryptBlock(dst, src)
	if got := strings.ToUpper(hex.EncodeToString(dst)); got != want {
		t.Fatalf("encryptBlock = %s, want %s", got, want)
	}

	back := make([]byte, FeistelBlockSize)
	sched.decryptBlock(back, dst)
	if got := strings.ToUpper(hex.EncodeToString(back)); got != "0123456789ABCDEF" {
		t.Fatalf("decryptBlock = %s, want original block", got)
	}
}

func TestFeistelHelloRoundTrip(t *testing.T) {
	f := NewFeistel()

	ct, err := f.Encrypt("HELLO", feistelTestKey)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(ct) != 16 {
		t.Fatalf("ciphertext is %d hex chars, want 16 (one block)", len(ct))
	}

	again, err := f.Encrypt("HELLO", feistelTestKey)
	if err != nil {
		t.Fatalf("second Encrypt failed: %v", err)
	}
	if ct != again {
		t.Fatalf("encryption is not deterministic: %s vs %s", ct, again)
	}

	pt, err := f.Decrypt(ct, feistelTestKey)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if pt != "HELLO" {
		t.Fatalf("round-trip = %q, want %q", pt, "HELLO")
	}
}

func TestFeistelRoundTripVariousLengths(t *testing.T) {
	f := NewFeistel()
	inputs := []string{"", "a", "exactly8", "a longer message spanning several blocks", "café au lait"}

	for _, in := range inputs {
		ct, err := f.Encrypt(in, feistelTestKey)
		if err != nil {
			t.Fatalf("Encrypt(%q) failed: %v", in, err)
		}
		pt, err := f.Decrypt(ct, feistelTestKey)
		if err != nil {
			t.Fatalf("Decrypt of %q ciphertext failed: %v", in, err)
		}
		if pt != in {
			t.Errorf("round-trip of %q = %q", in, pt)
		}
	}
}

func TestFeistelKeyFormatRejected(t *testing.T) {
	f := NewFeistel()
	badKeys := []string{"", "00", "not-hex-not-hex!", "133457799BBCDFF", "133457799BBCDFF12", "ZZZZZZZZZZZZZZZZ"}

	for _, key := range badKeys {
		if _, err := f.Encrypt("HELLO", key); !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("Encrypt with key %q: got %v, want ErrInvalidKeyFormat", key, err)
		}
		if _, err := f.Decrypt("85E813540F0AB405", key); !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("Decrypt with key %q: got %v, want ErrInvalidKeyFormat", key, err)
		}
	}
}

func TestFeistelCiphertextFormatRejected(t *testing.T) {
	f := NewFeistel()
	badCiphertexts := []string{"zz", "85E813540F0AB4", "85E813540F0AB405AB"}

	for _, ct := range badCiphertexts {
		if _, err := f.Decrypt(ct, feistelTestKey); !errors.Is(err, ErrInvalidCiphertextFormat) {
			t.Errorf("Decrypt(%q): got %v, want ErrInvalidCiphertextFormat", ct, err)
		}
	}
}

// A plaintext already at the block boundary still gains a full padding
// block.
func TestFeistelPaddingBoundary(t *testing.T) {
	f := NewFeistel()

	ct, err := f.Encrypt("exactly8", feistelTestKey)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(ct) != 32 {
		t.Fatalf("ciphertext is %d hex chars, want 32 (data block + full padding block)", len(ct))
	}
}

// With no chaining, changing block i of the plaintext must change only
// block i of the ciphertext.
func TestFeistelBlockIndependence(t *testing.T) {
	f := NewFeistel()

	ct1, err := f.Encrypt("AAAAAAAABBBBBBBB", feistelTestKey)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	ct2, err := f.Encrypt("AAAAAAAACCCCCCCC", feistelTestKey)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	// Three blocks each: shared first block, differing second, shared
	// padding block.
	if ct1[:16] != ct2[:16] {
		t.Errorf("first ciphertext blocks differ despite identical plaintext blocks")
	}
	if ct1[16:32] == ct2[16:32] {
		t.Errorf("second ciphertext blocks identical despite differing plaintext blocks")
	}
	if ct1[32:] != ct2[32:] {
		t.Errorf("padding blocks differ despite identical padding")
	}
}

// Flipping one input bit should flip roughly half the output bits. Smoke
// test with loose bounds, not an exact property.
func TestFeistelAvalanche(t *testing.T) {
	key, _ := hex.DecodeString(feistelTestKey)
	sched := NewFeistel().schedule(key)

	src1, _ := hex.DecodeString("0123456789ABCDEF")
	src2, _ := hex.DecodeString("0123456789ABCDEE")

	dst1 := make([]byte, FeistelBlockSize)
	dst2 := make([]byte, FeistelBlockSize)
	sched.encryptBlock(dst1, src1)
	sched.encryptBlock(dst2, src2)

	diff := 0
	for i := range dst1 {
		diff += bits.OnesCount8(dst1[i] ^ dst2[i])
	}
	if diff < 10 || diff > 54 {
		t.Errorf("one flipped input bit changed %d of 64 output bits, expected roughly half", diff)
	}
}

func TestFeistelKeyScheduleCarriesRotation(t *testing.T) {
	key, _ := hex.DecodeString(feistelTestKey)
	subkeys := expandFeistelKey(uint64(key[0])<<56 | uint64(key[1])<<48 | uint64(key[2])<<40 |
		uint64(key[3])<<32 | uint64(key[4])<<24 | uint64(key[5])<<16 | uint64(key[6])<<8 | uint64(key[7]))

	// First and last subkeys of the worked example.
	if got, want := subkeys[0], uint64(0x1B02EFFC7072); got != want {
		t.Errorf("subkey[0] = %012X, want %012X", got, want)
	}
	if got, want := subkeys[15], uint64(0xCB3D8B0E17F5); got != want {
		t.Errorf("subkey[15] = %012X, want %012X", got, want)
	}
}
