package models

import (
	"fmt"

	"github.com/arturkh/blogstack/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// TranslateError lets callers detect unique-constraint violations via
	// gorm.ErrDuplicatedKey across all three drivers.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Category{},
		&Post{},
		&Comment{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the default categories when none exist.
func SeedDefaultData() error {
	var count int64
	DB.Model(&Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaults := []Category{
		{Name: "General", Slug: "general", Description: "Posts without a better home"},
		{Name: "Technology", Slug: "technology", Description: "Software, hardware and everything between"},
		{Name: "Lifestyle", Slug: "lifestyle", Description: "Everyday life and culture"},
	}

	for _, cat := range defaults {
		if err := DB.Create(&cat).Error; err != nil {
			return err
		}
	}
	return nil
}
