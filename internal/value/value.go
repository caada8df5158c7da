package value

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// Kind identifies the SQL parameter type a Value binds as.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindLong
	KindBool
	KindDecimal
	KindString
	KindDateTime
	KindGUID
	KindBinary
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindInt:      "int",
	KindLong:     "long",
	KindBool:     "bool",
	KindDecimal:  "decimal",
	KindString:   "string",
	KindDateTime: "datetime",
	KindGUID:     "guid",
	KindBinary:   "binary",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("unknown value kind %q", s)
}

// Value is a sealed interface over the literal types a query can bind.
// Only the types in this package implement it.
type Value interface {
	Kind() Kind
	value() // Sealed
}

// Int is a 32-bit integer literal.
type Int int32

func (Int) Kind() Kind { return KindInt }
func (Int) value()     {}

// Long is a 64-bit integer literal.
type Long int64

func (Long) Kind() Kind { return KindLong }
func (Long) value()     {}

// Bool is a boolean literal.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) value()     {}

// String is a text literal.
type String string

func (String) Kind() Kind { return KindString }
func (String) value()     {}

// DateTime is a point-in-time literal.
type DateTime time.Time

func (DateTime) Kind() Kind { return KindDateTime }
func (DateTime) value()     {}

// Time returns the underlying time.Time.
func (d DateTime) Time() time.Time { return time.Time(d) }

// GUID is a UUID literal.
type GUID uuid.UUID

func (GUID) Kind() Kind { return KindGUID }
func (GUID) value()     {}

// UUID returns the underlying uuid.UUID.
func (g GUID) UUID() uuid.UUID { return uuid.UUID(g) }

// Binary is a byte-string literal.
type Binary []byte

func (Binary) Kind() Kind { return KindBinary }
func (Binary) value()     {}

// Null is a typed NULL. Of records the kind the column would otherwise carry,
// so adapters that need a typed null parameter can create one.
type Null struct {
	Of Kind
}

func (Null) Kind() Kind { return KindNull }
func (Null) value()     {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Decimal is an exact decimal literal.
// Floats never reach the parameter list; decimals stay exact end to end.
type Decimal struct {
	d *apd.Decimal
}

func (Decimal) Kind() Kind { return KindDecimal }
func (Decimal) value()     {}

// NewDecimal parses s as an exact decimal.
func NewDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Decimal{d: d}, nil
}

// MustDecimal is like NewDecimal but panics on malformed input.
// Intended for literals in tests and package-level fixtures.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalFromApd wraps an existing apd.Decimal. The argument is copied.
func DecimalFromApd(d *apd.Decimal) Decimal {
	var c apd.Decimal
	c.Set(d)
	return Decimal{d: &c}
}

// Apd returns a copy of the underlying apd.Decimal.
func (d Decimal) Apd() *apd.Decimal {
	var c apd.Decimal
	if d.d != nil {
		c.Set(d.d)
	}
	return &c
}

// String renders the decimal without exponent notation.
func (d Decimal) String() string {
	if d.d == nil {
		return "0"
	}
	return d.d.Text('f')
}

// MarshalJSON renders the decimal as a JSON string to avoid float rounding.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Of converts a Go native value to a Value.
// Supported: nil, int, int32, int64, bool, string, time.Time, uuid.UUID,
// []byte, *apd.Decimal and any Value (returned unchanged).
func Of(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case int32:
		return Int(val), nil
	case int:
		return Long(val), nil
	case int64:
		return Long(val), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case time.Time:
		return DateTime(val), nil
	case uuid.UUID:
		return GUID(val), nil
	case []byte:
		return Binary(val), nil
	case *apd.Decimal:
		return DecimalFromApd(val), nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

// Native returns the Go value a database driver would accept for v.
// Decimals become their canonical string form.
func Native(v Value) any {
	switch val := v.(type) {
	case Int:
		return int32(val)
	case Long:
		return int64(val)
	case Bool:
		return bool(val)
	case String:
		return string(val)
	case DateTime:
		return time.Time(val)
	case GUID:
		return uuid.UUID(val).String()
	case Binary:
		return []byte(val)
	case Decimal:
		return val.String()
	default:
		return nil
	}
}

// IntPtr returns Int(*p), or a Null of KindInt when p is nil.
func IntPtr(p *int32) Value {
	if p == nil {
		return Null{Of: KindInt}
	}
	return Int(*p)
}

// LongPtr returns Long(*p), or a Null of KindLong when p is nil.
func LongPtr(p *int64) Value {
	if p == nil {
		return Null{Of: KindLong}
	}
	return Long(*p)
}

// StringPtr returns String(*p), or a Null of KindString when p is nil.
func StringPtr(p *string) Value {
	if p == nil {
		return Null{Of: KindString}
	}
	return String(*p)
}

// DateTimePtr returns DateTime(*p), or a Null of KindDateTime when p is nil.
func DateTimePtr(p *time.Time) Value {
	if p == nil {
		return Null{Of: KindDateTime}
	}
	return DateTime(*p)
}
