package main

import (
	"os"

	"github.com/arturkh/blogstack/internal/config"
	"github.com/arturkh/blogstack/internal/handlers"
	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/internal/services"
	"github.com/arturkh/blogstack/internal/token"
	"github.com/arturkh/blogstack/pkg/logger"
)

// appServices holds everything the route table needs.
type appServices struct {
	tokenManager    *token.Manager
	cleanupService  *services.SessionCleanupService
	authHandler     *handlers.AuthHandler
	postHandler     *handlers.PostHandler
	categoryHandler *handlers.CategoryHandler
	commentHandler  *handlers.CommentHandler
	healthHandler   *handlers.HealthHandler
}

// bootstrap initializes database, token manager, services and handlers.
// Configuration errors here are fatal; nothing should serve traffic with a
// bad signing secret or an unreachable store.
func bootstrap(cfg *config.Config) *appServices {
	tm, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	if err != nil {
		logger.Fatalf("Failed to initialize token manager: %v", err)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()

	authService := services.NewAuthService(db, tm, cfg.JWT.RefreshTTL)
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
			if err := authService.CreateAdminIfNotExists(email, password); err != nil {
				logger.Warn().Err(err).Msg("Failed to create admin user")
			}
		}
	}

	cleanupService := services.NewSessionCleanupService(db, &cfg.Cleanup)
	if cfg.Cleanup.Enabled {
		if err := cleanupService.Start(cfg.Cleanup.Schedule); err != nil {
			logger.Warn().Err(err).Msg("Failed to start session cleanup scheduler")
		}
	}

	return &appServices{
		tokenManager:    tm,
		cleanupService:  cleanupService,
		authHandler:     handlers.NewAuthHandler(authService),
		postHandler:     handlers.NewPostHandler(db),
		categoryHandler: handlers.NewCategoryHandler(db),
		commentHandler:  handlers.NewCommentHandler(db),
		healthHandler:   handlers.NewHealthHandler(db),
	}
}

func (s *appServices) shutdown() {
	s.cleanupService.Stop()
	logger.Info().Msg("background services stopped")
}
