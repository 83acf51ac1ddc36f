package services

import (
	"errors"
	"time"

	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

type PostListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published"`
	Author   string `form:"author"`
	Category string `form:"category"`
}

type PostListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Post `json:"items"`
}

type CreatePostRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Slug          string `json:"slug" binding:"required,max=255"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt"`
	FeaturedImage string `json:"featured_image"`
	Publish       bool   `json:"publish"`
	CategoryIDs   []uint `json:"category_ids"`
}

type UpdatePostRequest struct {
	Title         string  `json:"title" binding:"omitempty,max=255"`
	Content       string  `json:"content"`
	Excerpt       *string `json:"excerpt"`
	FeaturedImage *string `json:"featured_image"`
	Publish       *bool   `json:"publish"`
	CategoryIDs   *[]uint `json:"category_ids"`
}

// List returns a page of posts, newest first. Unauthenticated callers should
// be given Status: "published".
func (s *PostService) List(req *PostListRequest) (*PostListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&models.Post{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Author != "" {
		if authorID, err := uuid.Parse(req.Author); err == nil {
			query = query.Where("author_id = ?", authorID)
		} else {
			return nil, response.NewBadRequest("invalid author id")
		}
	}
	if req.Category != "" {
		query = query.
			Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("categories.slug = ?", req.Category)
	}

	var total int64
	query.Count(&total)

	var posts []models.Post
	offset := (req.Page - 1) * req.PageSize
	err := query.
		Preload("Author").Preload("Categories").
		Offset(offset).Limit(req.PageSize).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, response.NewInternal(err)
	}

	return &PostListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    posts,
	}, nil
}

// GetBySlug returns one post and bumps its view counter.
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").Preload("Categories").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("post not found")
		}
		return nil, response.NewInternal(err)
	}

	s.db.Model(&post).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	post.ViewCount++

	return &post, nil
}

// Create inserts a post owned by authorID. A duplicate slug is a conflict.
func (s *PostService) Create(req *CreatePostRequest, authorID uuid.UUID) (*models.Post, error) {
	post := models.Post{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      authorID,
		Status:        models.PostStatusDraft,
	}
	if req.Publish {
		now := time.Now()
		post.Status = models.PostStatusPublished
		post.IsPublished = true
		post.PublishedAt = &now
	}

	if err := s.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("post with this slug already exists")
		}
		return nil, response.NewInternal(err)
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.attachCategories(&post, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

// Update applies partial changes. Only the author or an admin may edit.
func (s *PostService) Update(slug string, req *UpdatePostRequest, actorID uuid.UUID, actorRole string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("post not found")
		}
		return nil, response.NewInternal(err)
	}

	if post.AuthorID != actorID && actorRole != "admin" {
		return nil, response.NewForbidden("not allowed to modify this post")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Publish != nil {
		if *req.Publish && !post.IsPublished {
			now := time.Now()
			post.Status = models.PostStatusPublished
			post.IsPublished = true
			post.PublishedAt = &now
		} else if !*req.Publish {
			post.Status = models.PostStatusDraft
			post.IsPublished = false
			post.PublishedAt = nil
		}
	}

	if err := s.db.Save(&post).Error; err != nil {
		return nil, response.NewInternal(err)
	}

	if req.CategoryIDs != nil {
		if err := s.attachCategories(&post, *req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

// Delete removes a post. Only the author or an admin may delete.
func (s *PostService) Delete(slug string, actorID uuid.UUID, actorRole string) error {
	var post models.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("post not found")
		}
		return response.NewInternal(err)
	}

	if post.AuthorID != actorID && actorRole != "admin" {
		return response.NewForbidden("not allowed to delete this post")
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return response.NewInternal(err)
	}
	return nil
}

func (s *PostService) attachCategories(post *models.Post, categoryIDs []uint) error {
	var categories []models.Category
	if err := s.db.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return response.NewInternal(err)
	}
	if len(categories) != len(categoryIDs) {
		return response.NewBadRequest("one or more categories do not exist")
	}
	if err := s.db.Model(post).Association("Categories").Replace(categories); err != nil {
		return response.NewInternal(err)
	}
	post.Categories = categories
	return nil
}
