package model

import (
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/entity"
)

// CredentialModel mirrors the 'credentials' table. One password record per identity.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IdentityID   uuid.UUID `gorm:"type:uuid;unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}

// ToEntity converts the model to a domain Credential.
func (m *CredentialModel) ToEntity() *entity.Credential {
	return &entity.Credential{
		ID:           m.ID,
		IdentityID:   m.IdentityID,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RefreshTokenModel mirrors the 'refresh_tokens' table. Only token hashes are
// stored; revoked_at stays NULL while the session is live.
type RefreshTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash  string    `gorm:"type:varchar(64);unique;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
	RevokedAt  *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToEntity converts the model to a domain RefreshToken.
func (m *RefreshTokenModel) ToEntity() *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:         m.ID,
		IdentityID: m.IdentityID,
		TokenHash:  m.TokenHash,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		RevokedAt:  m.RevokedAt,
	}
}
