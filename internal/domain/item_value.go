package domain

import "github.com/google/uuid"

// ItemValue is the stored value of one (item, column) cell.
// Only the field selected by the column type is populated.
type ItemValue struct {
	BaseModel
	ItemID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_item_values_item_column,priority:1" json:"item_id"`
	ColumnID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_item_values_item_column,priority:2;index:idx_item_values_column_id" json:"column_id"`
	Value        *string      `gorm:"type:text" json:"value"`
	NumberValue  *float64     `json:"number_value"`
	DateValue    *string      `gorm:"type:varchar(10)" json:"date_value"`
	BooleanValue *bool        `json:"boolean_value"`
	Column       *BoardColumn `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ItemValue
func (ItemValue) TableName() string {
	return "item_values"
}
