package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is intentionally above the library default; login latency is
// the price of slower offline cracking.
const bcryptCost = 12

// HashPassword hashes a plaintext password with a fresh random salt.
// Identical inputs produce different hashes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A
// malformed hash is a mismatch, never an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
