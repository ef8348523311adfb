package identity

import (
	"time"

	"github.com/buildledger/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to create a user account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse represents issued tokens in API responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserResponse represents a user account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}
