package handlers

import (
	"strconv"

	"github.com/arturkh/blogstack/internal/services"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{categoryService: services.NewCategoryService(db)}
}

// List returns all categories
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "categories retrieved", categories)
}

// GetBySlug returns a category
// GET /api/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category retrieved", category)
}

// Create creates a category (admin)
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "category created", category)
}

// Update modifies a category (admin)
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category updated", category)
}

// Delete removes a category (admin)
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "category deleted", nil)
}
