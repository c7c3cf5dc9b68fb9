package grantcrypto

import (
	"strings"
	"testing"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cipher, err := New(testKey())
	if err != nil {
		t.Fatalf("cipher setup failed: %v", err)
	}

	encrypted, err := cipher.Encrypt("mot-de-passe-smtp")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if strings.Contains(encrypted, "mot-de-passe-smtp") {
		t.Fatal("ciphertext must not contain the plaintext")
	}

	decrypted, err := cipher.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if decrypted != "mot-de-passe-smtp" {
		t.Fatalf("round trip mismatch: %q", decrypted)
	}
}

func TestEncryptProducesUniqueCiphertexts(t *testing.T) {
	cipher, err := New(testKey())
	if err != nil {
		t.Fatalf("cipher setup failed: %v", err)
	}

	first, _ := cipher.Encrypt("secret")
	second, _ := cipher.Encrypt("secret")
	if first == second {
		t.Fatal("two encryptions of the same plaintext must differ (fresh nonce)")
	}
}

func TestNewRejectsBadKeySizes(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		if _, err := New(make([]byte, size)); err == nil {
			t.Fatalf("expected error for %d-byte key", size)
		}
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	cipher, err := New(testKey())
	if err != nil {
		t.Fatalf("cipher setup failed: %v", err)
	}

	encrypted, err := cipher.Encrypt("secret")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	tampered := []byte(encrypted)
	if tampered[len(tampered)-1] == 'f' {
		tampered[len(tampered)-1] = '0'
	} else {
		tampered[len(tampered)-1] = 'f'
	}
	if _, err := cipher.Decrypt(string(tampered)); err == nil {
		t.Fatal("tampered ciphertext must not decrypt")
	}

	if _, err := cipher.Decrypt("zz-not-hex"); err == nil {
		t.Fatal("non-hex input must be rejected")
	}
	if _, err := cipher.Decrypt("abcd"); err == nil {
		t.Fatal("input shorter than the nonce must be rejected")
	}
}
