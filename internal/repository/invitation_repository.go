package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamup-board-api/internal/database"
	"teamup-board-api/internal/domain"
)

var (
	// ErrInvitationUsed is returned when a redeemed, cancelled or otherwise closed invitation is redeemed again
	ErrInvitationUsed = errors.New("invitation already used")
	// ErrInvitationExpired is returned when the expiration date has passed
	ErrInvitationExpired = errors.New("invitation expired")
	// ErrAlreadyMember is returned when the redeeming user already holds the invited role or a higher one
	ErrAlreadyMember = errors.New("already a member with an equal or higher role")
)

// RedeemBy selects the invitation column used to look up a redemption
type RedeemBy string

const (
	RedeemByToken      RedeemBy = "token"
	RedeemByAccessCode RedeemBy = "access_code"
)

// InvitationRepository defines the interface for company_invitations data access
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.CompanyInvitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyInvitation, error)
	FindByToken(ctx context.Context, token string) (*domain.CompanyInvitation, error)
	FindPendingByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error)
	FindAccessCodesByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error)
	HasPendingForEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error)
	HasPendingCodeForUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	AccessCodeExists(ctx context.Context, code string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	Redeem(ctx context.Context, by RedeemBy, key string, userID uuid.UUID, now time.Time, authorize func(*domain.CompanyInvitation) error) (*domain.CompanyInvitation, error)
}

// invitationRepositoryImpl is the GORM implementation of InvitationRepository
type invitationRepositoryImpl struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

// Create creates a new invitation
func (r *invitationRepositoryImpl) Create(ctx context.Context, invitation *domain.CompanyInvitation) error {
	if invitation.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*invitation.Email))
		invitation.Email = &email
	}
	return r.db.WithContext(ctx).Create(invitation).Error
}

// FindByID finds an invitation by its ID
func (r *invitationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CompanyInvitation, error) {
	var invitation domain.CompanyInvitation
	if err := r.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByToken finds an invitation by token and loads its company
func (r *invitationRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.CompanyInvitation, error) {
	var invitation domain.CompanyInvitation
	if err := r.db.WithContext(ctx).
		Preload("Company").
		Where("token = ?", token).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindPendingByCompanyID lists pending invitations of a company, newest first
func (r *invitationRepositoryImpl) FindPendingByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error) {
	var invitations []*domain.CompanyInvitation
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, domain.InvitationStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// FindAccessCodesByCompanyID lists invitations carrying an access code, newest first
func (r *invitationRepositoryImpl) FindAccessCodesByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.CompanyInvitation, error) {
	var invitations []*domain.CompanyInvitation
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND access_code IS NOT NULL", companyID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// HasPendingForEmail reports whether a pending invitation exists for the address
func (r *invitationRepositoryImpl) HasPendingForEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("company_id = ? AND LOWER(email) = ? AND status = ?",
			companyID, strings.ToLower(strings.TrimSpace(email)), domain.InvitationStatusPending).
		Count(&count).Error
	return count > 0, err
}

// HasPendingCodeForUser reports whether an unvalidated access code targets the user
func (r *invitationRepositoryImpl) HasPendingCodeForUser(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("company_id = ? AND user_id = ? AND status = ? AND validated = ? AND access_code IS NOT NULL",
			companyID, userID, domain.InvitationStatusPending, false).
		Count(&count).Error
	return count > 0, err
}

// AccessCodeExists reports whether any invitation uses code
func (r *invitationRepositoryImpl) AccessCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("access_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus moves an invitation from one status to another.
// gorm.ErrRecordNotFound is returned when no row is in the from state.
func (r *invitationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.InvitationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an invitation
func (r *invitationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.CompanyInvitation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExpirePending marks pending invitations past their expiration date as expired
func (r *invitationRepositoryImpl) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("status = ? AND validated = ? AND expiration_date IS NOT NULL AND expiration_date < ?",
			domain.InvitationStatusPending, false, now).
		Updates(map[string]interface{}{"status": domain.InvitationStatusExpired, "updated_at": now})
	return result.RowsAffected, result.Error
}

// CountPending returns the number of pending invitations
func (r *invitationRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CompanyInvitation{}).
		Where("status = ?", domain.InvitationStatusPending).
		Count(&count).Error
	return count, err
}

// Redeem grants the invitation's role to userID and closes the invitation in
// one transaction. The row is locked on postgres. authorize runs against the
// locked row before any write; its error aborts the redemption unchanged.
// An expired row is marked expired and ErrInvitationExpired is returned.
// A user already holding the invited role or a higher one gets
// ErrAlreadyMember and the invitation stays open.
func (r *invitationRepositoryImpl) Redeem(
	ctx context.Context,
	by RedeemBy,
	key string,
	userID uuid.UUID,
	now time.Time,
	authorize func(*domain.CompanyInvitation) error,
) (*domain.CompanyInvitation, error) {
	var redeemed domain.CompanyInvitation
	var expired bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if database.IsPostgres(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where(string(by)+" = ?", key).First(&redeemed).Error; err != nil {
			return err
		}

		if redeemed.Validated || redeemed.Status != domain.InvitationStatusPending {
			return ErrInvitationUsed
		}
		if redeemed.IsExpired(now) {
			expired = true
			return tx.Model(&domain.CompanyInvitation{}).
				Where("id = ?", redeemed.ID).
				Updates(map[string]interface{}{"status": domain.InvitationStatusExpired, "updated_at": now}).Error
		}
		if authorize != nil {
			if err := authorize(&redeemed); err != nil {
				return err
			}
		}

		memberships := NewMembershipRepository(tx)
		existing, err := memberships.FindRole(ctx, userID, redeemed.CompanyID)
		switch {
		case err == nil && existing.Role.AtLeast(redeemed.Role):
			// redemption only ever raises a role
			return ErrAlreadyMember
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		role := &domain.UserCompanyRole{
			UserID:    userID,
			CompanyID: redeemed.CompanyID,
			Role:      redeemed.Role,
		}
		if err := memberships.Upsert(ctx, role); err != nil {
			return err
		}

		redeemed.Validated = true
		redeemed.Status = domain.InvitationStatusAccepted
		redeemed.ValidatedBy = &userID
		redeemed.ValidatedAt = &now
		return tx.Model(&domain.CompanyInvitation{}).
			Where("id = ?", redeemed.ID).
			Updates(map[string]interface{}{
				"validated":    true,
				"status":       domain.InvitationStatusAccepted,
				"validated_by": userID,
				"validated_at": now,
				"updated_at":   now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrInvitationExpired
	}
	return &redeemed, nil
}

// IsDuplicateKey reports whether err is a unique constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
