package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public identity record of a user. Its ID is the user ID.
type Profile struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex:uq_profiles_email" json:"email"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// Credential holds the password hash for a profile
type Credential struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	PasswordHash     string     `gorm:"type:varchar(255);not null" json:"-"`
	EmailConfirmedAt *time.Time `gorm:"type:timestamp" json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Credential
func (Credential) TableName() string {
	return "user_credentials"
}
