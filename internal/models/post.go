package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a blog entry owned by one author.
type Post struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"type:text" json:"excerpt,omitempty"`
	Status        string     `gorm:"size:20;default:draft" json:"status"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"author_id"`
	Author        User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	FeaturedImage string     `gorm:"size:500" json:"featured_image,omitempty"`
	ViewCount     int        `gorm:"default:0" json:"view_count"`
	IsPublished   bool       `gorm:"default:false" json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Categories    []Category `gorm:"many2many:post_categories" json:"categories,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
