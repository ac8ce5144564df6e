package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusCancelled InvitationStatus = "cancelled"
	InvitationStatusExpired   InvitationStatus = "expired"
)

// CompanyInvitation is a pending grant of membership, redeemable by token or access code
type CompanyInvitation struct {
	BaseModel
	CompanyID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_company_invitations_company_id" json:"company_id"`
	Email          *string          `gorm:"type:varchar(255);index:idx_company_invitations_email" json:"email,omitempty"`
	Role           Role             `gorm:"type:varchar(20);not null;default:'Member'" json:"role"`
	Status         InvitationStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_company_invitations_status" json:"status"`
	Token          string           `gorm:"type:varchar(64);not null;uniqueIndex:uq_company_invitations_token" json:"-"`
	AccessCode     *string          `gorm:"type:varchar(8);uniqueIndex:uq_company_invitations_access_code" json:"access_code,omitempty"`
	UserID         *uuid.UUID       `gorm:"type:uuid;index:idx_company_invitations_user_id" json:"user_id,omitempty"`
	InvitedBy      uuid.UUID        `gorm:"type:uuid;not null" json:"invited_by"`
	Validated      bool             `gorm:"not null;default:false" json:"validated"`
	ValidatedBy    *uuid.UUID       `gorm:"type:uuid" json:"validated_by,omitempty"`
	ValidatedAt    *time.Time       `gorm:"type:timestamp" json:"validated_at,omitempty"`
	ExpirationDate *time.Time       `gorm:"type:timestamp;index:idx_company_invitations_expiration_date" json:"expiration_date,omitempty"`
	Company        *Company         `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"company,omitempty"`
}

// TableName specifies the table name for CompanyInvitation
func (CompanyInvitation) TableName() string {
	return "company_invitations"
}

// IsExpired reports whether the invitation's expiration date has passed
func (i *CompanyInvitation) IsExpired(now time.Time) bool {
	return i.ExpirationDate != nil && now.After(*i.ExpirationDate)
}

// IsRedeemable reports whether the invitation can still grant membership
func (i *CompanyInvitation) IsRedeemable(now time.Time) bool {
	return !i.Validated && i.Status == InvitationStatusPending && !i.IsExpired(now)
}
