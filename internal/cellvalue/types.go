// Package cellvalue maps a board column's declared type to the storage field
// of an item value and back. It owns every per-type conversion so that
// handlers, services and the realtime reducer share one rule set.
package cellvalue

import (
	"strings"

	"teamup-board-api/internal/domain"
)

// ColumnType is the declared type of a board column. The set is open:
// unknown types behave like text.
type ColumnType string

const (
	TypeText        ColumnType = "text"
	TypeNumber      ColumnType = "number"
	TypeDate        ColumnType = "date"
	TypeTimestamp   ColumnType = "timestamp"
	TypeLastUpdated ColumnType = "last updated"
	TypeStatus      ColumnType = "status"
	TypePriority    ColumnType = "priority"
	TypeCheckbox    ColumnType = "checkbox"
	TypeTextarea    ColumnType = "textarea"
	TypeNotes       ColumnType = "notes"
	TypeFile        ColumnType = "file"
	TypeDateRange   ColumnType = "date-range"
)

// KnownTypes lists the column types with dedicated handling
var KnownTypes = []ColumnType{
	TypeText, TypeNumber, TypeDate, TypeTimestamp, TypeLastUpdated, TypeStatus,
	TypePriority, TypeCheckbox, TypeTextarea, TypeNotes, TypeFile, TypeDateRange,
}

// DefaultStatusOptions are assigned to a status column created without options
var DefaultStatusOptions = []string{"Not started", "Working on it", "Stuck", "Done"}

// DefaultPriorityOptions are assigned to a priority column created without options
var DefaultPriorityOptions = []string{"Low", "Medium", "High", "Critical"}

// Normalize lowercases and trims a raw type name
func Normalize(raw string) ColumnType {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch t {
	case "last_updated", "last-updated", "lastupdated":
		return TypeLastUpdated
	case "date_range", "daterange":
		return TypeDateRange
	case "":
		return TypeText
	}
	return ColumnType(t)
}

// Field names one of the typed storage columns of item_values
type Field string

const (
	FieldValue   Field = "value"
	FieldNumber  Field = "number_value"
	FieldDate    Field = "date_value"
	FieldBoolean Field = "boolean_value"
)

// Field returns the storage field that is active for t
func (t ColumnType) Field() Field {
	switch Normalize(string(t)) {
	case TypeNumber:
		return FieldNumber
	case TypeDate, TypeTimestamp, TypeLastUpdated:
		return FieldDate
	case TypeCheckbox:
		return FieldBoolean
	default:
		return FieldValue
	}
}

// Kind returns the CellValue variant produced for t
func (t ColumnType) Kind() Kind {
	switch Normalize(string(t)) {
	case TypeNumber:
		return KindNumber
	case TypeDate, TypeTimestamp, TypeLastUpdated:
		return KindDate
	case TypeCheckbox:
		return KindBoolean
	case TypeDateRange:
		return KindDateRange
	default:
		return KindText
	}
}

// HasOptions reports whether the type restricts values to the column's options
func (t ColumnType) HasOptions() bool {
	n := Normalize(string(t))
	return n == TypeStatus || n == TypePriority
}

// IsAutoStamped reports whether the type is maintained by the system
func (t ColumnType) IsAutoStamped() bool {
	n := Normalize(string(t))
	return n == TypeTimestamp || n == TypeLastUpdated
}

// Spec is the subset of a column the conversions depend on
type Spec struct {
	Type     ColumnType
	Options  []string
	Readonly bool
}

// SpecOf builds a Spec from a stored column
func SpecOf(col *domain.BoardColumn) Spec {
	return Spec{
		Type:     Normalize(col.Type),
		Options:  []string(col.Options),
		Readonly: col.IsReadonly,
	}
}

// IsReadonly reports whether interactive edits are refused for the column
func (s Spec) IsReadonly() bool {
	return s.Readonly || s.Type.IsAutoStamped()
}

// DefaultOptions returns the options a new column of type t receives when none are supplied
func DefaultOptions(t ColumnType) []string {
	switch Normalize(string(t)) {
	case TypeStatus:
		return append([]string(nil), DefaultStatusOptions...)
	case TypePriority:
		return append([]string(nil), DefaultPriorityOptions...)
	}
	return nil
}
