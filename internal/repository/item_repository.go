package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamup-board-api/internal/domain"
)

// ItemRepository defines the interface for board_items data access
type ItemRepository interface {
	CreateWithValues(ctx context.Context, item *domain.BoardItem, values []*domain.ItemValue) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardItem, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardItem, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) ([]*domain.ItemValue, error)
	MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error)
	Count(ctx context.Context) (int64, error)
}

// itemRepositoryImpl is the GORM implementation of ItemRepository
type itemRepositoryImpl struct {
	db *gorm.DB
}

// NewItemRepository creates a new instance of ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepositoryImpl{db: db}
}

// CreateWithValues inserts the item and, in the same transaction, all of its
// default values in a single batch
func (r *itemRepositoryImpl) CreateWithValues(ctx context.Context, item *domain.BoardItem, values []*domain.ItemValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Values").Create(item).Error; err != nil {
			return err
		}
		if len(values) == 0 {
			return nil
		}
		for _, v := range values {
			v.ItemID = item.ID
		}
		return tx.Omit("Column").Create(&values).Error
	})
}

// FindByID finds an item by its ID
func (r *itemRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.BoardItem, error) {
	var item domain.BoardItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByBoardID lists the items of a board by order
func (r *itemRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardItem, error) {
	var items []*domain.BoardItem
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order(`"order" ASC, created_at ASC`).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateName renames an item
func (r *itemRepositoryImpl) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.BoardItem{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an item with its values and attachments and returns the removed values
func (r *itemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) ([]*domain.ItemValue, error) {
	var removed []*domain.ItemValue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&domain.ItemValue{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.BoardItem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// MaxOrder returns the highest item order of a board, or 0 when it has none
func (r *itemRepositoryImpl) MaxOrder(ctx context.Context, boardID uuid.UUID) (int, error) {
	var maxOrder int
	if err := r.db.WithContext(ctx).
		Model(&domain.BoardItem{}).
		Select(`COALESCE(MAX("order"), 0)`).
		Where("board_id = ?", boardID).
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder, nil
}

// Count returns the number of items across all boards
func (r *itemRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BoardItem{}).Count(&count).Error
	return count, err
}
