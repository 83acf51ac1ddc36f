package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/arturkh/blogstack/internal/models"
	"github.com/arturkh/blogstack/internal/token"
	"github.com/arturkh/blogstack/internal/utils"
	"github.com/arturkh/blogstack/pkg/logger"
	"github.com/arturkh/blogstack/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService orchestrates registration, login, token refresh, logout and
// profile retrieval.
type AuthService struct {
	db         *gorm.DB
	tokens     *token.Manager
	sessions   *SessionStore
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, tokens *token.Manager, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		tokens:     tokens,
		sessions:   NewSessionStore(db),
		refreshTTL: refreshTTL,
	}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public projection of a user; the password hash can
// never reach it.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

func publicUser(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Avatar:     u.Avatar,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// Register creates an account and signs it in. An existing email or username
// is reported as one generic conflict; the response never says which field
// collided.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("email = ? OR username = ?", req.Email, req.Username).
		Count(&count).Error
	if err != nil {
		return nil, response.NewInternal(err)
	}
	if count > 0 {
		return nil, response.NewConflict("user with this email or username already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, response.NewInternal(err)
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "user",
		IsActive:  true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration; the unique indexes
		// on email and username are the arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("user with this email or username already exists")
		}
		return nil, response.NewInternal(err)
	}

	return s.issueTokenPair(&user)
}

// Login authenticates by email and password. A wrong password and an unknown
// email produce the identical message so accounts cannot be enumerated.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, response.NewInternal(err)
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("account is deactivated")
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return s.issueTokenPair(&user)
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is not rotated. Checks run in a fixed order:
// existence, revocation, expiry, then account status.
func (s *AuthService) Refresh(req *RefreshRequest) (*RefreshResponse, error) {
	if req.RefreshToken == "" {
		return nil, response.NewBadRequest("refresh token is required")
	}

	record, err := s.sessions.FindByToken(req.RefreshToken)
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) && appErr.Status == http.StatusNotFound {
			return nil, response.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}
	if record.IsRevoked {
		return nil, response.NewUnauthorized("invalid refresh token")
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, response.NewUnauthorized("refresh token has expired")
	}

	var user models.User
	if err := s.db.Where("id = ?", record.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("user not found or inactive")
		}
		return nil, response.NewInternal(err)
	}
	if !user.IsActive {
		return nil, response.NewUnauthorized("user not found or inactive")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, response.NewInternal(err)
	}

	return &RefreshResponse{AccessToken: accessToken}, nil
}

// Logout revokes the supplied refresh token. It always succeeds: a missing,
// unknown or already-revoked token changes nothing.
func (s *AuthService) Logout(req *LogoutRequest) error {
	if req.RefreshToken == "" {
		return nil
	}
	if err := s.sessions.Revoke(req.RefreshToken); err != nil {
		logger.Warn().Err(err).Msg("failed to revoke refresh token on logout")
	}
	return nil
}

// GetProfile returns the public fields of the account behind a verified
// subject id.
func (s *AuthService) GetProfile(userID uuid.UUID) (*UserResponse, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, response.NewInternal(err)
	}

	resp := publicUser(&user)
	return &resp, nil
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  string  `json:"username" binding:"omitempty,min=3,max=50"`
	Avatar    *string `json:"avatar"`
}

// UpdateProfile applies partial changes to the caller's own account.
func (s *AuthService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, response.NewInternal(err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Username != "" {
		user.Username = req.Username
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("username already taken")
		}
		return nil, response.NewInternal(err)
	}

	resp := publicUser(&user)
	return &resp, nil
}

// CreateAdminIfNotExists seeds one admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists(email, password string) error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Username: "admin",
		Password: hash,
		Role:     "admin",
		IsActive: true,
	}
	return s.db.Create(&admin).Error
}

func (s *AuthService) issueTokenPair(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, response.NewInternal(err)
	}

	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return nil, response.NewInternal(err)
	}

	if _, err := s.sessions.Create(user.ID, refreshToken, s.refreshTTL); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         publicUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
