// Package model holds the GORM table mappings for the PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/entity"
)

// IdentityModel mirrors the 'identities' table. PostgreSQL generates UUIDs
// via gen_random_uuid().
type IdentityModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username    string    `gorm:"type:varchar(64);unique;not null"`
	Email       string    `gorm:"type:varchar(255);unique;not null"`
	DisplayName string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Roles         []RoleModel         `gorm:"foreignKey:IdentityID"`
	Credential    *CredentialModel    `gorm:"foreignKey:IdentityID"`
	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:IdentityID"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}

// RoleModel mirrors the 'identity_roles' table. One row per role grant.
type RoleModel struct {
	IdentityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role       string    `gorm:"type:varchar(32);primaryKey"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "identity_roles"
}

// ToEntity converts the model and its loaded roles to a domain Identity.
func (m *IdentityModel) ToEntity() *entity.Identity {
	roles := make(entity.Roles, 0, len(m.Roles))
	for _, r := range m.Roles {
		roles = append(roles, entity.Role(r.Role))
	}

	return &entity.Identity{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Roles:       roles,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// IdentityModelFromEntity converts a domain Identity to its table mapping.
// Role rows are managed separately by GrantRole.
func IdentityModelFromEntity(e *entity.Identity) *IdentityModel {
	return &IdentityModel{
		ID:          e.ID,
		Username:    e.Username,
		Email:       e.Email,
		DisplayName: e.DisplayName,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
