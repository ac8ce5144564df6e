package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
)

// ProfileRepository defines the interface for profile and credential data access
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile, credential *domain.Credential) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	FindCredential(ctx context.Context, userID uuid.UUID) (*domain.Credential, error)
	EnsureProfile(ctx context.Context, profile *domain.Profile) error
}

// profileRepositoryImpl is the GORM implementation of ProfileRepository
type profileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// Create inserts a profile and its credential in one transaction
func (r *profileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile, credential *domain.Credential) error {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		credential.UserID = profile.ID
		return tx.Create(credential).Error
	})
}

// FindByID finds a profile by its ID
func (r *profileRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByIDs finds profiles by their IDs
func (r *profileRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Profile, error) {
	if len(ids) == 0 {
		return []*domain.Profile{}, nil
	}
	var profiles []*domain.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindByEmail finds a profile by case-insensitive exact email match
func (r *profileRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindCredential finds the credential for a user
func (r *profileRepositoryImpl) FindCredential(ctx context.Context, userID uuid.UUID) (*domain.Credential, error) {
	var credential domain.Credential
	if err := r.db.WithContext(ctx).First(&credential, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

// EnsureProfile inserts the profile unless one with the same ID exists
func (r *profileRepositoryImpl) EnsureProfile(ctx context.Context, profile *domain.Profile) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Profile{}).Where("id = ?", profile.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	return r.db.WithContext(ctx).Create(profile).Error
}
