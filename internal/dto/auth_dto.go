package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignUpRequest represents the request to create an account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
	Name     string `json:"name" example:"Ana Souza"`
}

// SignInRequest represents the request to sign in with email and password
type SignInRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// UserResponse is the public view of a profile
type UserResponse struct {
	ID    uuid.UUID `json:"id" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	Email string    `json:"email" example:"ana@example.com"`
	Name  string    `json:"name" example:"Ana Souza"`
}

// SessionResponse represents an issued access token
// @Description tokenType is always "bearer"
type SessionResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"bearer"`
	ExpiresAt   time.Time    `json:"expiresAt" example:"2025-01-02T10:30:00Z"`
	User        UserResponse `json:"user"`
}

// SessionContextResponse is the signed-in user with every company membership
type SessionContextResponse struct {
	User      UserResponse      `json:"user"`
	Companies []CompanyResponse `json:"companies"`
}
