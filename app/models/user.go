package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// User is the local identity record. Authentication itself is delegated to
// the external identity provider; a row is created lazily the first time a
// user authenticates and syncs (email is the lookup key everywhere).
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	AuthProviderID string         `gorm:"type:varchar(191);index" json:"auth_provider_id"`
	Name           string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Role           string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	APIKeyHash     string         `gorm:"type:varchar(64);default:null;index" json:"-"`
	LastLoginAt    *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// IsAdmin reports whether the user may call the admin mutation endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// HashAPIKey returns the hex SHA-256 digest stored for API key lookups.
func HashAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}
