package handlers

import (
	"strconv"

	"github.com/arturkh/blogstack/internal/middleware"
	"github.com/arturkh/blogstack/internal/services"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{commentService: services.NewCommentService(db)}
}

// ListByPost returns comments on a post
// GET /api/posts/:slug/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	includeUnapproved := middleware.GetRole(c) == "admin"
	comments, err := h.commentService.ListByPost(c.Param("slug"), includeUnapproved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "comments retrieved", comments)
}

// Create adds a comment to a post
// POST /api/posts/:slug/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(c.Param("slug"), &req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "comment created", comment)
}

// Approve marks a comment as approved (admin)
// POST /api/comments/:id/approve
func (h *CommentHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	comment, err := h.commentService.Approve(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "comment approved", comment)
}

// Delete removes a comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(uint(id), middleware.GetUserID(c), middleware.GetRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "comment deleted", nil)
}
