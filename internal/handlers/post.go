package handlers

import (
	"github.com/arturkh/blogstack/internal/middleware"
	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/internal/services"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{postService: services.NewPostService(db)}
}

// List returns paginated posts
// GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	var req services.PostListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Anonymous callers only see published posts.
	if middleware.GetUserID(c) == uuid.Nil {
		req.Status = models.PostStatusPublished
	}

	resp, err := h.postService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "posts retrieved", resp)
}

// GetBySlug returns a single post
// GET /api/posts/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "post retrieved", post)
}

// Create creates a post owned by the current user
// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "post created", post)
}

// Update modifies a post
// PUT /api/posts/:slug
func (h *PostHandler) Update(c *gin.Context) {
	var req services.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Update(c.Param("slug"), &req, middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "post updated", post)
}

// Delete removes a post
// DELETE /api/posts/:slug
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Param("slug"), middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "post deleted", nil)
}
