package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Board is a named table of items and typed columns within a company
type Board struct {
	BaseModel
	CompanyID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_boards_company_id" json:"company_id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	CreatedBy   *uuid.UUID    `gorm:"type:uuid" json:"created_by"`
	Company     *Company      `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	Columns     []BoardColumn `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	Items       []BoardItem   `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// BoardColumn declares the shape of one vertical slice of a board
type BoardColumn struct {
	BaseModel
	BoardID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_board_columns_board_id" json:"board_id"`
	Name       string                      `gorm:"type:varchar(255);not null" json:"name"`
	Type       string                      `gorm:"type:varchar(50);not null" json:"type"`
	Order      int                         `gorm:"column:order;not null;default:0" json:"order"`
	Options    datatypes.JSONSlice[string] `json:"options"`
	IsReadonly bool                        `gorm:"not null;default:false" json:"is_readonly"`
}

// TableName specifies the table name for BoardColumn
func (BoardColumn) TableName() string {
	return "board_columns"
}

// BoardItem is one row of a board
type BoardItem struct {
	BaseModel
	BoardID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_board_items_board_id" json:"board_id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Order     int         `gorm:"column:order;not null;default:0" json:"order"`
	CreatedBy *uuid.UUID  `gorm:"type:uuid" json:"created_by,omitempty"`
	Values    []ItemValue `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for BoardItem
func (BoardItem) TableName() string {
	return "board_items"
}
