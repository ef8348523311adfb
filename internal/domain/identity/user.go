package identity

import (
	"context"
	"strings"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is an account that can be a member of any number of projects. Staff
// and superusers bypass per-project role checks entirely.
type User struct {
	shared.BaseEntity
	Email        string
	FullName     string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
}

// NewUser creates an active user with a normalised email.
func NewUser(email, fullName, passwordHash string) *User {
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        NormalizeEmail(email),
		FullName:     fullName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

// NormalizeEmail lower-cases and trims an email address. Mixed-case emails
// in the account table caused duplicate logins historically.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Repository provides access to user accounts.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
