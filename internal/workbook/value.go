package workbook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tags the type of a cell value.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindDate
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a typed cell value. The zero Value is empty.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
	Bool bool
}

// StringValue returns a string cell. Blank strings become empty cells.
func StringValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{Kind: KindString, Str: s}
}

// NumberValue returns a numeric cell.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// DateValue returns a date cell.
func DateValue(t time.Time) Value {
	return Value{Kind: KindDate, Time: t}
}

// BoolValue returns a boolean cell.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IsEmpty reports whether the cell holds nothing.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// String renders the value the way a spreadsheet user would type it.
// Integral numbers have no decimal point; dates use 2006-01-02.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str)
	case KindNumber:
		return FormatNumber(v.Num)
	case KindDate:
		return v.Time.Format("2006-01-02")
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// FormatNumber formats n without exponent or trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Of converts a plain Go value into a Value. nil becomes empty; unknown
// types are rendered with fmt and treated as strings.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return StringValue(x)
	case float64:
		return NumberValue(x)
	case float32:
		return NumberValue(float64(x))
	case int:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case json.Number:
		if n, err := x.Float64(); err == nil {
			return NumberValue(n)
		}
		return StringValue(x.String())
	case time.Time:
		return DateValue(x)
	case *time.Time:
		if x == nil {
			return Value{}
		}
		return DateValue(*x)
	case bool:
		return BoolValue(x)
	default:
		return StringValue(fmt.Sprint(x))
	}
}
