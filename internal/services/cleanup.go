package services

import (
	"time"

	"github.com/arturkh/blogstack/internal/config"
	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SessionCleanupService deletes refresh tokens that have been expired or
// revoked for longer than the retention window. This is housekeeping only;
// refresh validation never depends on rows being deleted.
type SessionCleanupService struct {
	db        *gorm.DB
	retention time.Duration
	scheduler *cron.Cron
}

func NewSessionCleanupService(db *gorm.DB, cfg *config.CleanupConfig) *SessionCleanupService {
	return &SessionCleanupService{
		db:        db,
		retention: cfg.RetentionTTL,
	}
}

// Start schedules the cleanup with the given cron expression.
func (s *SessionCleanupService) Start(schedule string) error {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(schedule, func() {
		if n, err := s.RunOnce(); err != nil {
			logger.Error().Err(err).Msg("session cleanup failed")
		} else if n > 0 {
			logger.Info().Int64("deleted", n).Msg("session cleanup done")
		}
	}); err != nil {
		return err
	}
	s.scheduler.Start()
	return nil
}

func (s *SessionCleanupService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunOnce deletes dead sessions older than the retention cutoff and returns
// the number of rows removed.
func (s *SessionCleanupService) RunOnce() (int64, error) {
	cutoff := time.Now().Add(-s.retention)
	result := s.db.
		Where("expires_at < ?", cutoff).
		Or("is_revoked = ? AND created_at < ?", true, cutoff).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
