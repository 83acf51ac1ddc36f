package services

import (
	"errors"

	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// ListByPost returns comments on the post with the given slug, oldest first.
// Unless the caller moderates (admin) it only sees approved comments.
func (s *CommentService) ListByPost(postSlug string, includeUnapproved bool) ([]models.Comment, error) {
	post, err := s.findPost(postSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Preload("Author").Where("post_id = ?", post.ID)
	if !includeUnapproved {
		query = query.Where("is_approved = ?", true)
	}

	var comments []models.Comment
	if err := query.Order("created_at").Find(&comments).Error; err != nil {
		return nil, response.NewInternal(err)
	}
	return comments, nil
}

// Create adds a comment to a post. A reply must reference a parent on the
// same post.
func (s *CommentService) Create(postSlug string, req *CreateCommentRequest, authorID uuid.UUID) (*models.Comment, error) {
	post, err := s.findPost(postSlug)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewBadRequest("parent comment does not exist")
			}
			return nil, response.NewInternal(err)
		}
		if parent.PostID != post.ID {
			return nil, response.NewBadRequest("parent comment belongs to a different post")
		}
	}

	comment := models.Comment{
		Content:  req.Content,
		PostID:   post.ID,
		AuthorID: authorID,
		ParentID: req.ParentID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, response.NewInternal(err)
	}
	return &comment, nil
}

// Approve marks a comment as visible to everyone.
func (s *CommentService) Approve(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("comment not found")
		}
		return nil, response.NewInternal(err)
	}

	if err := s.db.Model(&comment).Update("is_approved", true).Error; err != nil {
		return nil, response.NewInternal(err)
	}
	comment.IsApproved = true
	return &comment, nil
}

// Delete removes a comment. Only its author or an admin may delete.
func (s *CommentService) Delete(id uint, actorID uuid.UUID, actorRole string) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("comment not found")
		}
		return response.NewInternal(err)
	}

	if comment.AuthorID != actorID && actorRole != "admin" {
		return response.NewForbidden("not allowed to delete this comment")
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return response.NewInternal(err)
	}
	return nil
}

func (s *CommentService) findPost(slug string) (*models.Post, error) {
	var post models.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("post not found")
		}
		return nil, response.NewInternal(err)
	}
	return &post, nil
}
