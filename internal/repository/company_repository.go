package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
)

// CompanyWithRole is a company joined with the caller's role in it
type CompanyWithRole struct {
	domain.Company
	Role *domain.Role `gorm:"column:role"`
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	CreateWithAdmin(ctx context.Context, company *domain.Company, adminID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*CompanyWithRole, error)
	Count(ctx context.Context) (int64, error)
}

// companyRepositoryImpl is the GORM implementation of CompanyRepository
type companyRepositoryImpl struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create creates a new company
func (r *companyRepositoryImpl) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// CreateWithAdmin creates the company and grants adminID the Admin role atomically
func (r *companyRepositoryImpl) CreateWithAdmin(ctx context.Context, company *domain.Company, adminID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		role := &domain.UserCompanyRole{
			UserID:    adminID,
			CompanyID: company.ID,
			Role:      domain.RoleAdmin,
		}
		return tx.Create(role).Error
	})
}

// FindByID finds a company by its ID
func (r *companyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByUserID returns the companies a user belongs to, newest first
func (r *companyRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*CompanyWithRole, error) {
	var companies []*CompanyWithRole
	if err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.*, user_company_roles.role AS role").
		Joins("JOIN user_company_roles ON user_company_roles.company_id = companies.id").
		Where("user_company_roles.user_id = ?", userID).
		Order("companies.created_at DESC").
		Scan(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Count returns the number of companies
func (r *companyRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error
	return count, err
}
