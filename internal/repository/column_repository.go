package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
)

// ColumnRepository defines the interface for board_columns data access
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.BoardColumn) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardColumn, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardColumn, error)
	Update(ctx context.Context, column *domain.BoardColumn) error
	MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error)
}

// columnRepositoryImpl is the GORM implementation of ColumnRepository
type columnRepositoryImpl struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepositoryImpl{db: db}
}

// Create creates a new column
func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.BoardColumn) error {
	return r.db.WithContext(ctx).Create(column).Error
}

// FindByID finds a column by its ID
func (r *columnRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardColumn, error) {
	var column domain.BoardColumn
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// FindByBoardID lists the columns of a board by order
func (r *columnRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardColumn, error) {
	var columns []*domain.BoardColumn
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order(`"order" ASC, created_at ASC`).
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update saves name, options and readonly flag. The type is never updated.
func (r *columnRepositoryImpl) Update(ctx context.Context, column *domain.BoardColumn) error {
	return r.db.WithContext(ctx).
		Model(column).
		Select("name", "options", "is_readonly", "updated_at").
		Updates(column).Error
}

// MaxOrder returns the highest column order of a board, or 0 when it has none
func (r *columnRepositoryImpl) MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	var maxOrder int
	if err := r.db.WithContext(ctx).
		Model(&domain.BoardColumn{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Where("board_id = ?", boardID).
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder, nil
}
