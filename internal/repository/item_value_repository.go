package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamup-board-api/internal/domain"
)

// ItemValueRepository defines the interface for item_values data access
type ItemValueRepository interface {
	Find(ctx context.Context, itemID, columnID uuid.UUID) (*domain.ItemValue, error)
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*domain.ItemValue, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.ItemValue, error)
	Upsert(ctx context.Context, value *domain.ItemValue) (inserted bool, err error)
}

// itemValueRepositoryImpl is the GORM implementation of ItemValueRepository
type itemValueRepositoryImpl struct {
	db *gorm.DB
}

// NewItemValueRepository creates a new instance of ItemValueRepository
func NewItemValueRepository(db *gorm.DB) ItemValueRepository {
	return &itemValueRepositoryImpl{db: db}
}

// Find finds the value of one cell
func (r *itemValueRepositoryImpl) Find(ctx context.Context, itemID, columnID uuid.UUID) (*domain.ItemValue, error) {
	var value domain.ItemValue
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND column_id = ?", itemID, columnID).
		First(&value).Error; err != nil {
		return nil, err
	}
	return &value, nil
}

// FindByItemIDs lists the values of the given items
func (r *itemValueRepositoryImpl) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*domain.ItemValue, error) {
	if len(itemIDs) == 0 {
		return []*domain.ItemValue{}, nil
	}
	var values []*domain.ItemValue
	if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByBoardID lists every value on a board
func (r *itemValueRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.ItemValue, error) {
	var values []*domain.ItemValue
	if err := r.db.WithContext(ctx).
		Where("item_id IN (?)", r.db.Model(&domain.BoardItem{}).Select("id").Where("board_id = ?", boardID)).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// Upsert writes all four typed fields of the (item_id, column_id) cell,
// clearing the nil ones. value is refreshed with the stored row.
func (r *itemValueRepositoryImpl) Upsert(ctx context.Context, value *domain.ItemValue) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ItemValue
		err := tx.Where("item_id = ? AND column_id = ?", value.ItemID, value.ColumnID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			inserted = true
			if err := tx.Omit("Column").Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "item_id"}, {Name: "column_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"value", "number_value", "date_value", "boolean_value", "updated_at",
				}),
			}).Create(value).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			now := time.Now()
			if err := tx.Model(&domain.ItemValue{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"value":         value.Value,
					"number_value":  value.NumberValue,
					"date_value":    value.DateValue,
					"boolean_value": value.BooleanValue,
					"updated_at":    now,
				}).Error; err != nil {
				return err
			}
		}
		var stored domain.ItemValue
		if err := tx.Where("item_id = ? AND column_id = ?", value.ItemID, value.ColumnID).First(&stored).Error; err != nil {
			return err
		}
		*value = stored
		return nil
	})
	return inserted, err
}
