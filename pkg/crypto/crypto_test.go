package crypto

import (
	"errors"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		envelope, err := Encrypt("sensitive value", testKey)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if envelope == "sensitive value" {
			t.Error("envelope equals plaintext")
		}

		plain, err := Decrypt(envelope, testKey)
		if err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if plain != "sensitive value" {
			t.Errorf("Decrypt() = %q", plain)
		}
	})

	t.Run("empty plaintext round trips", func(t *testing.T) {
		envelope, err := Encrypt("", testKey)
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		plain, err := Decrypt(envelope, testKey)
		if err != nil || plain != "" {
			t.Errorf("Decrypt() = %q, %v", plain, err)
		}
	})

	t.Run("nonces differ per call", func(t *testing.T) {
		a, _ := Encrypt("same", testKey)
		b, _ := Encrypt("same", testKey)
		if a == b {
			t.Error("two encryptions produced identical envelopes")
		}
	})

	t.Run("wrong key length", func(t *testing.T) {
		if _, err := Encrypt("x", []byte("short")); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("Encrypt: expected ErrInvalidKeyLength, got %v", err)
		}
		if _, err := Decrypt("x", []byte("short")); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("Decrypt: expected ErrInvalidKeyLength, got %v", err)
		}
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		envelope, _ := Encrypt("value", testKey)
		otherKey := []byte("ffffffffffffffffffffffffffffffff")
		if _, err := Decrypt(envelope, otherKey); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("expected ErrDecryptionFailed, got %v", err)
		}
	})

	t.Run("garbage envelope", func(t *testing.T) {
		if _, err := Decrypt("not base64 at all!!!", testKey); !errors.Is(err, ErrInvalidCiphertext) {
			t.Errorf("expected ErrInvalidCiphertext, got %v", err)
		}
	})

	t.Run("truncated envelope", func(t *testing.T) {
		if _, err := Decrypt("AAAA", testKey); !errors.Is(err, ErrInvalidCiphertext) {
			t.Errorf("expected ErrInvalidCiphertext, got %v", err)
		}
	})
}
