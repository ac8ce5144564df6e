package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateInvitationRequest represents the request to invite a user by email
// @Description role defaults to Member
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required" example:"guest@example.com"`
	Role  string `json:"role" binding:"omitempty,oneof=Admin Member Viewer" example:"Member"`
}

// CreateAccessCodeRequest represents the request to mint an access code
// @Description Without email the code is open: anyone holding it may redeem it once
type CreateAccessCodeRequest struct {
	Email string `json:"email,omitempty" example:"guest@example.com"`
	Role  string `json:"role" binding:"omitempty,oneof=Admin Member Viewer" example:"Member"`
}

// InvitationResponse represents an invitation or access code
type InvitationResponse struct {
	ID             uuid.UUID  `json:"invitationId"`
	CompanyID      uuid.UUID  `json:"companyId"`
	Email          *string    `json:"email,omitempty"`
	Role           string     `json:"role" example:"Member"`
	Status         string     `json:"status" example:"pending"`
	AccessCode     *string    `json:"accessCode,omitempty" example:"9F3A0C1B"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	InvitedBy      uuid.UUID  `json:"invitedBy"`
	Validated      bool       `json:"validated"`
	ValidatedBy    *uuid.UUID `json:"validatedBy,omitempty"`
	ValidatedAt    *time.Time `json:"validatedAt,omitempty"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// InvitationCreatedResponse is returned after an invitation row is stored
// @Description warning is EMAIL_DELIVERY_FAILED when the row was stored but the email could not be sent
type InvitationCreatedResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	Warning    string             `json:"warning,omitempty" example:"EMAIL_DELIVERY_FAILED"`
}

// InvitationPreviewResponse describes an invitation to the person about to accept it
type InvitationPreviewResponse struct {
	CompanyID   uuid.UUID  `json:"companyId"`
	CompanyName string     `json:"companyName" example:"Acme Inc."`
	Email       *string    `json:"email,omitempty"`
	Role        string     `json:"role" example:"Member"`
	Status      string     `json:"status" example:"pending"`
	Expired     bool       `json:"expired"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// AcceptInvitationRequest represents the request to redeem an invitation token
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// ValidateAccessCodeRequest represents the request to redeem an access code
type ValidateAccessCodeRequest struct {
	Code string `json:"code" example:"9F3A0C1B"`
}

// RedemptionResponse is the outcome of redeeming a token or access code.
// @Description Logical failures are reported with success=false and HTTP 200
type RedemptionResponse struct {
	Success   bool       `json:"success"`
	CompanyID *uuid.UUID `json:"companyId,omitempty"`
	Role      string     `json:"role,omitempty"`
	Error     string     `json:"error,omitempty"`
}
