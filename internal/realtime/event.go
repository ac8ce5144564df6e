package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Table names a table whose row changes are published
type Table string

const (
	TableItems   Table = "board_items"
	TableColumns Table = "board_columns"
	TableValues  Table = "item_values"
)

// EventType is the kind of row change
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent describes one row change on a board. New is empty for DELETE,
// Old is empty for INSERT.
type ChangeEvent struct {
	Table     Table          `json:"table"`
	EventType EventType      `json:"eventType"`
	BoardID   uuid.UUID      `json:"boardId"`
	New       datatypes.JSON `json:"new,omitempty"`
	Old       datatypes.JSON `json:"old,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewChangeEvent encodes the given rows into an event. Either row may be nil.
func NewChangeEvent(table Table, eventType EventType, boardID uuid.UUID, newRow, oldRow interface{}) (ChangeEvent, error) {
	event := ChangeEvent{
		Table:     table,
		EventType: eventType,
		BoardID:   boardID,
		Timestamp: time.Now().UTC(),
	}
	var err error
	if event.New, err = encodeRow(newRow); err != nil {
		return event, fmt.Errorf("encode new row: %w", err)
	}
	if event.Old, err = encodeRow(oldRow); err != nil {
		return event, fmt.Errorf("encode old row: %w", err)
	}
	return event, nil
}

func encodeRow(row interface{}) (datatypes.JSON, error) {
	if row == nil {
		return nil, nil
	}
	b, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// Decode unmarshals the new row, or the old row for DELETE, into dst
func (e ChangeEvent) Decode(dst interface{}) error {
	row := e.New
	if e.EventType == EventDelete || len(row) == 0 {
		row = e.Old
	}
	if len(row) == 0 {
		return fmt.Errorf("%s %s event carries no row", e.Table, e.EventType)
	}
	return json.Unmarshal(row, dst)
}
