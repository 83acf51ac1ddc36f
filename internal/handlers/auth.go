package handlers

import (
	"github.com/arturkh/blogstack/internal/middleware"
	"github.com/arturkh/blogstack/internal/services"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "user registered successfully", resp)
}

// Login authenticates with email and password
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "login successful", resp)
}

// Refresh exchanges a refresh token for a new access token
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "token refreshed successfully", resp)
}

// Logout revokes the supplied refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req services.LogoutRequest
	// An empty or malformed body still logs out successfully.
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.Logout(&req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "logout successful", nil)
}

// Profile returns the authenticated user's public fields
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.GetProfile(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "profile retrieved successfully", user)
}

// UpdateProfile modifies the authenticated user's own account
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "profile updated successfully", user)
}
