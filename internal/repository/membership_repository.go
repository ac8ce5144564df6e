package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamup-board-api/internal/domain"
)

// MembershipRepository defines the interface for user_company_roles data access
type MembershipRepository interface {
	FindRole(ctx context.Context, userID, companyID uuid.UUID) (*domain.UserCompanyRole, error)
	FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.UserCompanyRole, error)
	Upsert(ctx context.Context, role *domain.UserCompanyRole) error
	UpdateRole(ctx context.Context, userID, companyID uuid.UUID, role domain.Role) error
	Delete(ctx context.Context, userID, companyID uuid.UUID) error
	CountByRole(ctx context.Context, companyID uuid.UUID, role domain.Role) (int64, error)
	WithTx(tx *gorm.DB) MembershipRepository
}

// membershipRepositoryImpl is the GORM implementation of MembershipRepository
type membershipRepositoryImpl struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

// WithTx returns a repository bound to tx
func (r *membershipRepositoryImpl) WithTx(tx *gorm.DB) MembershipRepository {
	return &membershipRepositoryImpl{db: tx}
}

// FindRole finds the membership row of a user in a company
func (r *membershipRepositoryImpl) FindRole(ctx context.Context, userID, companyID uuid.UUID) (*domain.UserCompanyRole, error) {
	var role domain.UserCompanyRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByCompanyID lists the members of a company with their profiles, oldest first
func (r *membershipRepositoryImpl) FindByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*domain.UserCompanyRole, error) {
	var roles []*domain.UserCompanyRole
	if err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Upsert inserts the membership or updates the role when (user_id, company_id) exists
func (r *membershipRepositoryImpl) Upsert(ctx context.Context, role *domain.UserCompanyRole) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(role).Error
}

// UpdateRole changes the role of an existing member
func (r *membershipRepositoryImpl) UpdateRole(ctx context.Context, userID, companyID uuid.UUID, role domain.Role) error {
	result := r.db.WithContext(ctx).
		Model(&domain.UserCompanyRole{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a member from a company
func (r *membershipRepositoryImpl) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Delete(&domain.UserCompanyRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByRole counts members of a company holding role
func (r *membershipRepositoryImpl) CountByRole(ctx context.Context, companyID uuid.UUID, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.UserCompanyRole{}).
		Where("company_id = ? AND role = ?", companyID, role).
		Count(&count).Error
	return count, err
}
