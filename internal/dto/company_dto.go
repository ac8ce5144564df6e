package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCompanyRequest represents the request to create a new company
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"Acme Inc."`
}

// CompanyResponse represents a company and, when listed for a user, that user's role
// @Description role is "Unknown" when the membership row could not be read
type CompanyResponse struct {
	ID        uuid.UUID `json:"companyId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name      string    `json:"name" example:"Acme Inc."`
	CreatedBy uuid.UUID `json:"createdBy" example:"b2c3d4e5-f6a7-8901-bcde-f12345678901"`
	Role      string    `json:"role,omitempty" example:"Admin"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}

// MemberResponse represents one member of a company
type MemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name" example:"Ana Souza"`
	Email    string    `json:"email" example:"ana@example.com"`
	Role     string    `json:"role" example:"Member"`
	JoinedAt time.Time `json:"joinedAt"`
}

// UpdateMemberRoleRequest represents the request to change a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=Admin Member Viewer" example:"Viewer"`
}
