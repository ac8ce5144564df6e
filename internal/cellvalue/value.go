package cellvalue

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the variant held by a CellValue
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindBoolean
	KindDateRange
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	case KindDateRange:
		return "date-range"
	default:
		return "text"
	}
}

// DateRange is a pair of date-only strings. Either side may be empty.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether both sides are empty
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// CellValue is the resolved value of a cell: Text, Number, Date, Boolean or DateRange.
// The zero value of each variant is its empty state.
type CellValue struct {
	kind    Kind
	present bool
	text    string
	number  float64
	date    string
	boolean bool
	rng     DateRange
}

func Text(s string) CellValue { return CellValue{kind: KindText, present: true, text: s} }
func Number(f float64) CellValue { return CellValue{kind: KindNumber, present: true, number: f} }
func Date(d string) CellValue { return CellValue{kind: KindDate, present: true, date: d} }
func Boolean(b bool) CellValue { return CellValue{kind: KindBoolean, present: true, boolean: b} }
func Range(r DateRange) CellValue { return CellValue{kind: KindDateRange, present: !r.IsZero(), rng: r} }
func Empty(kind Kind) CellValue { return CellValue{kind: kind} }

func (v CellValue) Kind() Kind { return v.kind }
func (v CellValue) IsEmpty() bool { return !v.present }

// Text returns the text variant's string
func (v CellValue) Text() (string, bool) {
	return v.text, v.kind == KindText && v.present
}

// Number returns the number variant's value
func (v CellValue) Number() (float64, bool) {
	return v.number, v.kind == KindNumber && v.present
}

// Date returns the date variant's YYYY-MM-DD string
func (v CellValue) Date() (string, bool) {
	return v.date, v.kind == KindDate && v.present
}

// Boolean returns the boolean variant's value
func (v CellValue) Boolean() (bool, bool) {
	return v.boolean, v.kind == KindBoolean && v.present
}

// Range returns the date-range variant. An empty range is {"", ""}.
func (v CellValue) Range() (DateRange, bool) {
	return v.rng, v.kind == KindDateRange
}

// Interface returns the value in the shape an edit widget expects.
// Empty values are "" except date-range, which is {start:"", end:""}.
func (v CellValue) Interface() interface{} {
	if v.kind == KindDateRange {
		return v.rng
	}
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindNumber:
		return v.number
	case KindDate:
		return v.date
	case KindBoolean:
		return v.boolean
	default:
		return v.text
	}
}

// MarshalJSON encodes the widget representation
func (v CellValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Display returns a plain string for listings and filters
func (v CellValue) Display() string {
	if v.kind == KindDateRange {
		if v.rng.IsZero() {
			return ""
		}
		return v.rng.Start + " - " + v.rng.End
	}
	if !v.present {
		return ""
	}
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindDate:
		return v.date
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	default:
		return v.text
	}
}
