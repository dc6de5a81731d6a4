package icu

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindTag:
		return "function"
	default:
		return "unknown"
	}
}

// Value is a runtime argument: a string, number, boolean, date or tag handler.
// The zero Value is invalid and behaves like an unsupported type.
type Value struct {
	t      time.Time
	tag    any
	raw    any
	str    string
	num    float64
	digits int
	kind   Kind
	b      bool
}

// Values maps argument names to runtime values.
type Values map[string]Value

// TagHandler renders the formatted content of a tag into a T.
// chunks is never empty: a tag without content receives one empty text chunk.
type TagHandler[T any] func(chunks []Chunk[T]) T

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s, digits: -1}
}

// Number returns a numeric value. Its visible fraction digits, used for
// CLDR plural operands, are derived from the shortest representation of n.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n, digits: -1}
}

// Int returns an integer numeric value.
func Int(n int64) Value {
	return Value{kind: KindNumber, num: float64(n), digits: 0}
}

// Decimal returns a numeric value that keeps the visible fraction digits of d,
// so that 1.0 and 1 can select different plural categories.
func Decimal(d decimal.Decimal) Value {
	digits := 0
	if exp := d.Exponent(); exp < 0 {
		digits = int(-exp)
	}
	return Value{kind: KindNumber, num: d.InexactFloat64(), digits: digits}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b, digits: -1}
}

// Date returns a date/time value, usable with date and time arguments.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t, digits: -1}
}

// Handler returns a tag handler value. The handler's T must match the T that
// Format is instantiated with.
func Handler[T any](fn TagHandler[T]) Value {
	if fn == nil {
		return Value{kind: KindInvalid, digits: -1}
	}
	return Value{kind: KindTag, tag: fn, digits: -1}
}

// Any converts a loosely typed value. Strings, booleans, time.Time,
// decimal.Decimal, Value and tag handlers over string or any keep their
// kind; every numeric Go type becomes a number. Anything else yields an
// invalid Value that fails wherever it is used.
func Any(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case time.Time:
		return Date(x)
	case decimal.Decimal:
		return Decimal(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case TagHandler[string]:
		return Handler(x)
	case func([]Chunk[string]) string:
		return Handler(TagHandler[string](x))
	case TagHandler[any]:
		return Handler(x)
	case func([]Chunk[any]) any:
		return Handler(TagHandler[any](x))
	case nil:
		return Value{digits: -1}
	}
	if n, err := cast.ToFloat64E(v); err == nil {
		return Number(n)
	}
	return Value{kind: KindInvalid, raw: v, digits: -1}
}

// Args converts a map of loosely typed values with Any.
// Nil entries are dropped, so they report MISSING_ARGUMENT when used.
func Args(m map[string]any) Values {
	values := make(Values, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		values[k] = Any(v)
	}
	return values
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric value and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// FractionDigits returns the number of visible fraction digits of a number:
// explicit for Decimal and Int values, derived otherwise.
func (v Value) FractionDigits() int {
	if v.digits >= 0 {
		return v.digits
	}
	s := strconv.FormatFloat(v.num, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}

// typeName names the dynamic type for TYPE_MISMATCH messages.
func (v Value) typeName() string {
	if v.kind == KindInvalid && v.raw != nil {
		return fmt.Sprintf("%T", v.raw)
	}
	return v.kind.String()
}

// text stringifies strings, numbers and booleans; ok is false otherwise.
func (v Value) text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}
