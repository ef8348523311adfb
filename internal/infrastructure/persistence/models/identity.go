package models

import (
	"github.com/buildledger/backend/internal/domain/identity"
)

// UserModel is the persistence model for user accounts
type UserModel struct {
	BaseModel
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	FullName     string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		IsStaff:      m.IsStaff,
		IsSuperuser:  m.IsSuperuser,
		IsActive:     m.IsActive,
	}
}

// FromDomain populates UserModel from domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.FullName = u.FullName
	m.PasswordHash = u.PasswordHash
	m.IsStaff = u.IsStaff
	m.IsSuperuser = u.IsSuperuser
	m.IsActive = u.IsActive
}
