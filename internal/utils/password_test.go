package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("hash should not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash %q is not a bcrypt hash", hash)
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
	if !CheckPassword("same-password", h1) || !CheckPassword("same-password", h2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"correct password", "secret123", hash, true},
		{"wrong password", "secret124", hash, false},
		{"empty password", "", hash, false},
		{"malformed hash", "secret123", "not-a-bcrypt-hash", false},
		{"empty hash", "secret123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestHashCheck_RandomPlaintexts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping bcrypt property test in short mode")
	}
	for i := 0; i < 100; i++ {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			t.Fatalf("rand.Read() error = %v", err)
		}
		password := hex.EncodeToString(buf)

		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%q) error = %v", password, err)
		}
		if !CheckPassword(password, hash) {
			t.Fatalf("CheckPassword(%q, hash) = false", password)
		}
		if CheckPassword(password+"x", hash) {
			t.Fatalf("CheckPassword accepted perturbed password %q", password+"x")
		}
	}
}
