package services

import (
	"errors"
	"time"

	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/internal/token"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStore persists refresh tokens. Rows are only ever inserted and
// flagged revoked; expired and revoked rows stay in place for the cleanup
// job to collect.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create inserts a session for the raw refresh token, expiring lifetime from
// now. A duplicate token is a conflict; with 256 bits of entropy behind each
// token it should never be observed.
func (s *SessionStore) Create(userID uuid.UUID, rawToken string, lifetime time.Duration) (*models.RefreshToken, error) {
	record := models.RefreshToken{
		UserID:    userID,
		TokenHash: token.HashRefreshToken(rawToken),
		ExpiresAt: time.Now().Add(lifetime),
	}

	if err := s.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("refresh token already exists")
		}
		return nil, response.NewInternal(err)
	}
	return &record, nil
}

// FindByToken looks up the session for a raw refresh token.
func (s *SessionStore) FindByToken(rawToken string) (*models.RefreshToken, error) {
	var record models.RefreshToken
	err := s.db.Where("token_hash = ?", token.HashRefreshToken(rawToken)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("refresh token not found")
		}
		return nil, response.NewInternal(err)
	}
	return &record, nil
}

// Revoke marks the session for the raw token as revoked. Revoking a missing
// or already-revoked token is a no-op, not an error.
func (s *SessionStore) Revoke(rawToken string) error {
	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", token.HashRefreshToken(rawToken)).
		Update("is_revoked", true).Error
	if err != nil {
		return response.NewInternal(err)
	}
	return nil
}
