package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoardRequest represents the request to create a new board
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Q1 Roadmap"`
	Description string `json:"description" binding:"max=2000" example:"Everything shipping this quarter"`
}

// UpdateBoardRequest represents the request to update a board. All fields are optional.
type UpdateBoardRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// BoardResponse represents a board
type BoardResponse struct {
	ID          uuid.UUID  `json:"boardId"`
	CompanyID   uuid.UUID  `json:"companyId"`
	Name        string     `json:"name" example:"Q1 Roadmap"`
	Description string     `json:"description"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateColumnRequest represents the request to add a column to a board
// @Description Status and priority columns created without options receive the default option lists
type CreateColumnRequest struct {
	Name       string   `json:"name" binding:"required,max=255" example:"Status"`
	Type       string   `json:"type" binding:"required,max=50" example:"status"`
	Options    []string `json:"options,omitempty"`
	IsReadonly bool     `json:"isReadonly"`
}

// UpdateColumnRequest represents the request to update a column. The type cannot change.
type UpdateColumnRequest struct {
	Name       *string  `json:"name" binding:"omitempty,max=255"`
	Options    []string `json:"options"`
	IsReadonly *bool    `json:"isReadonly"`
}

// ColumnResponse represents a board column
type ColumnResponse struct {
	ID         uuid.UUID `json:"columnId"`
	BoardID    uuid.UUID `json:"boardId"`
	Name       string    `json:"name" example:"Status"`
	Type       string    `json:"type" example:"status"`
	Order      int       `json:"order" example:"1"`
	Options    []string  `json:"options"`
	IsReadonly bool      `json:"isReadonly"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateItemRequest represents the request to add an item to a board
type CreateItemRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"Write launch post"`
}

// UpdateItemRequest represents the request to rename an item
type UpdateItemRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ItemResponse represents a board item
type ItemResponse struct {
	ID        uuid.UUID  `json:"itemId"`
	BoardID   uuid.UUID  `json:"boardId"`
	Name      string     `json:"name" example:"Write launch post"`
	Order     int        `json:"order" example:"1"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
