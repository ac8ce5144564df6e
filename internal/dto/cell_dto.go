package dto

import (
	"time"

	"github.com/google/uuid"

	"teamup-board-api/internal/cellvalue"
)

// CommitCellRequest carries raw editor input for one cell.
// @Description value may be a string, number, boolean, {start,end} object or null
type CommitCellRequest struct {
	Value interface{} `json:"value" swaggertype:"object"`
}

// ItemValueResponse is the stored row of a cell
type ItemValueResponse struct {
	ID           uuid.UUID `json:"id"`
	ItemID       uuid.UUID `json:"itemId"`
	ColumnID     uuid.UUID `json:"columnId"`
	Value        *string   `json:"value"`
	NumberValue  *float64  `json:"numberValue"`
	DateValue    *string   `json:"dateValue"`
	BooleanValue *bool     `json:"booleanValue"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CellResponse is a cell with its stored row and resolved value
type CellResponse struct {
	ItemID   uuid.UUID           `json:"itemId"`
	ColumnID uuid.UUID           `json:"columnId"`
	Type     string              `json:"type" example:"number"`
	Value    cellvalue.CellValue `json:"value" swaggertype:"object"`
	Display  string              `json:"display" example:"12.5"`
	Stored   *ItemValueResponse  `json:"stored,omitempty"`
}

// GridFilters narrows the items returned by a grid request
type GridFilters struct {
	Query    string `form:"q"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

// BoardStats summarizes the first status column over every item of a board
type BoardStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Stuck      int `json:"stuck"`
}

// GridResponse is a board with everything needed to render its table.
// @Description cells is keyed by item id, then column id
type GridResponse struct {
	Board   BoardResponse                                   `json:"board"`
	Columns []ColumnResponse                                `json:"columns"`
	Items   []ItemResponse                                  `json:"items"`
	Values  []ItemValueResponse                             `json:"values"`
	Cells   map[uuid.UUID]map[uuid.UUID]cellvalue.CellValue `json:"cells" swaggertype:"object"`
	Stats   BoardStats                                      `json:"stats"`
}
