// Package token issues and verifies the two credential kinds used by the
// API: signed, self-contained access tokens (HS256 JWT) and opaque,
// high-entropy refresh tokens that are only ever lookup keys.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the shortest signing secret the Manager accepts.
// A shorter secret is a configuration error, caught at construction.
const MinSecretLength = 32

// ErrInvalidToken is returned for every access-token verification failure:
// bad signature, wrong algorithm, malformed payload or expiry. Callers must
// not be able to tell a forged token from an expired one.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the identity attributes carried inside an access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Manager signs and verifies access tokens and mints refresh tokens.
// It is immutable after construction and safe for concurrent use.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d characters, got %d", MinSecretLength, len(secret))
	}
	if accessTTL <= 0 {
		return nil, fmt.Errorf("access token lifetime must be positive, got %s", accessTTL)
	}
	return &Manager{secret: []byte(secret), accessTTL: accessTTL}, nil
}

// IssueAccessToken mints a signed token for the given identity, valid from
// now until now plus the configured lifetime.
func (m *Manager) IssueAccessToken(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccessToken verifies signature and expiry and returns the claims.
// Any failure collapses to ErrInvalidToken.
func (m *Manager) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewRefreshToken returns 32 bytes of cryptographic randomness, hex encoded.
// The token carries no claims and cannot be decoded; uniqueness is enforced
// by the session store's unique index on its hash.
func NewRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashRefreshToken derives the value stored at rest; the raw token is never
// persisted.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
