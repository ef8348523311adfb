package identity

import (
	"context"
	"errors"
	"time"

	"github.com/buildledger/backend/internal/domain/identity"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for any failed login. The reason is
// deliberately not disclosed.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	userRepo   identity.Repository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.Repository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := identity.NewUser(req.Email, req.FullName, hash)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login checks credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	if s.blacklist != nil && claims.ID != "" {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err == nil && revoked {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}

	// One-shot refresh tokens: revoke the presented one
	if s.blacklist != nil && claims.ID != "" && claims.ExpiresAt != nil {
		_ = s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}

	return s.issueTokens(user)
}

// Logout revokes the presented access token and all earlier sessions of the
// user
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims, maxTokenLifetime time.Duration) error {
	if s.blacklist == nil {
		return nil
	}
	if claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return err
		}
	}
	return s.blacklist.RevokeAllForUser(ctx, claims.UserID, maxTokenLifetime)
}

// Me returns the authenticated user's account
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueTokens(user *identity.User) (*TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}
