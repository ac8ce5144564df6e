package cellvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"teamup-board-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ErrInvalidValue is wrapped by every conversion failure
var ErrInvalidValue = errors.New("invalid cell value")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

// Stored is the canonical storage shape of a cell: at most one field is non-nil.
type Stored struct {
	Value        *string
	NumberValue  *float64
	DateValue    *string
	BooleanValue *bool
}

// IsEmpty reports whether no field is set
func (s Stored) IsEmpty() bool {
	return s.Value == nil && s.NumberValue == nil && s.DateValue == nil && s.BooleanValue == nil
}

// ActiveFields returns the storage fields that hold a value
func (s Stored) ActiveFields() []Field {
	var fields []Field
	if s.Value != nil {
		fields = append(fields, FieldValue)
	}
	if s.NumberValue != nil {
		fields = append(fields, FieldNumber)
	}
	if s.DateValue != nil {
		fields = append(fields, FieldDate)
	}
	if s.BooleanValue != nil {
		fields = append(fields, FieldBoolean)
	}
	return fields
}

// FromItemValue reads the typed fields of a stored row; nil yields nil
func FromItemValue(iv *domain.ItemValue) *Stored {
	if iv == nil {
		return nil
	}
	return &Stored{
		Value:        iv.Value,
		NumberValue:  iv.NumberValue,
		DateValue:    iv.DateValue,
		BooleanValue: iv.BooleanValue,
	}
}

// ApplyTo overwrites all four typed fields of iv, clearing the inactive ones
func (s Stored) ApplyTo(iv *domain.ItemValue) {
	iv.Value = s.Value
	iv.NumberValue = s.NumberValue
	iv.DateValue = s.DateValue
	iv.BooleanValue = s.BooleanValue
}

// Resolve returns the value of a cell for the column. A nil row yields the
// type's empty representation. Rows written by older clients that put
// everything in value are read leniently.
func Resolve(spec Spec, s *Stored) CellValue {
	kind := spec.Type.Kind()
	if s == nil {
		return Empty(kind)
	}

	switch kind {
	case KindNumber:
		if s.NumberValue != nil {
			return Number(*s.NumberValue)
		}
		if s.Value != nil {
			if f, err := parseNumber(*s.Value); err == nil && f != nil {
				return Number(*f)
			}
		}
	case KindDate:
		if s.DateValue != nil && *s.DateValue != "" {
			if d, err := parseDate(*s.DateValue); err == nil {
				return Date(d)
			}
		}
		if s.Value != nil {
			if d, err := parseDate(*s.Value); err == nil && d != "" {
				return Date(d)
			}
		}
	case KindBoolean:
		if s.BooleanValue != nil {
			return Boolean(*s.BooleanValue)
		}
		if s.Value != nil {
			if b, err := parseBool(*s.Value); err == nil && b != nil {
				return Boolean(*b)
			}
		}
	case KindDateRange:
		if s.Value != nil {
			var r DateRange
			if err := json.Unmarshal([]byte(*s.Value), &r); err == nil {
				return Range(r)
			}
		}
		return Range(DateRange{})
	default:
		if s.Value != nil {
			if *s.Value == "" {
				return Empty(KindText)
			}
			return Text(*s.Value)
		}
	}
	return Empty(kind)
}

// Commit converts raw editor input to the column type's storage shape.
// Empty input clears the cell. raw may be a string, float64, json.Number,
// bool, a {start, end} map, DateRange, or nil.
func Commit(spec Spec, raw interface{}) (Stored, error) {
	switch spec.Type.Kind() {
	case KindNumber:
		f, err := toNumber(raw)
		if err != nil || f == nil {
			return Stored{}, err
		}
		return Stored{NumberValue: f}, nil

	case KindDate:
		d, err := toDate(raw)
		if err != nil || d == "" {
			return Stored{}, err
		}
		return Stored{DateValue: &d}, nil

	case KindBoolean:
		b, err := toBool(raw)
		if err != nil || b == nil {
			return Stored{}, err
		}
		return Stored{BooleanValue: b}, nil

	case KindDateRange:
		r, err := toRange(raw)
		if err != nil || r.IsZero() {
			return Stored{}, err
		}
		encoded, err := json.Marshal(r)
		if err != nil {
			return Stored{}, invalid("date range: %v", err)
		}
		s := string(encoded)
		return Stored{Value: &s}, nil
	}

	text, err := toText(raw)
	if err != nil {
		return Stored{}, err
	}
	if text == "" {
		return Stored{}, nil
	}
	if spec.Type.HasOptions() && len(spec.Options) > 0 && !contains(spec.Options, text) {
		return Stored{}, invalid("%q is not an option of this column", text)
	}
	return Stored{Value: &text}, nil
}

// Default returns the value a new item receives for the column.
// Auto-stamped columns get today's date; text-like columns get "";
// date, number, checkbox and date-range columns start unset.
func Default(spec Spec, now time.Time) Stored {
	if spec.Type.IsAutoStamped() {
		d := now.UTC().Format(dateLayout)
		return Stored{DateValue: &d}
	}
	switch spec.Type.Kind() {
	case KindNumber, KindDate, KindBoolean, KindDateRange:
		return Stored{}
	}
	empty := ""
	return Stored{Value: &empty}
}

func toNumber(raw interface{}) (*float64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return finite(float64(v))
	case int64:
		return finite(float64(v))
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	}
	return nil, invalid("number expected, got %T", raw)
}

func parseNumber(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, invalid("%q is not a number", s)
	}
	return finite(f)
}

func finite(f float64) (*float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalid("number must be finite")
	}
	return &f, nil
}

func toDate(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case time.Time:
		return v.UTC().Format(dateLayout), nil
	case string:
		return parseDate(v)
	}
	return "", invalid("date expected, got %T", raw)
}

// parseDate accepts YYYY-MM-DD or RFC3339 and returns the UTC date part
func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", invalid("%q is not a date", s)
}

func toBool(raw interface{}) (*bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case float64:
		if v == 0 || v == 1 {
			b := v == 1
			return &b, nil
		}
	case string:
		return parseBool(v)
	}
	return nil, invalid("boolean expected, got %v", raw)
}

func parseBool(s string) (*bool, error) {
	var b bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "true", "1":
		b = true
	case "false", "0":
		b = false
	default:
		return nil, invalid("%q is not a boolean", s)
	}
	return &b, nil
}

func toRange(raw interface{}) (DateRange, error) {
	var r DateRange
	switch v := raw.(type) {
	case nil:
		return r, nil
	case DateRange:
		r = v
	case *DateRange:
		if v != nil {
			r = *v
		}
	case map[string]interface{}:
		start, _ := v["start"].(string)
		end, _ := v["end"].(string)
		r = DateRange{Start: start, End: end}
	case string:
		if strings.TrimSpace(v) == "" {
			return r, nil
		}
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return r, invalid("date range must be {start, end}")
		}
	default:
		return r, invalid("date range expected, got %T", raw)
	}

	start, err := parseDate(r.Start)
	if err != nil {
		return r, err
	}
	end, err := parseDate(r.End)
	if err != nil {
		return r, err
	}
	if start != "" && end != "" && end < start {
		return r, invalid("date range ends before it starts")
	}
	return DateRange{Start: start, End: end}, nil
}

func toText(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case map[string]interface{}, []interface{}:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", invalid("unsupported value")
		}
		return string(encoded), nil
	}
	return fmt.Sprint(raw), nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
