package querysql

import (
	"time"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/value"
)

// FieldMapping pairs a declared column with the function that extracts its
// value from an entity.
type FieldMapping[T any] struct {
	Field     *FieldReference
	Extract   func(T) value.Value
	MaxLength int
}

// EntityTable is a Table whose columns are mapped from a Go type, so
// entities can be inserted without building the InsertQuery by hand.
//
// Mappings are declared once, typically at package init, and the table is
// read-only afterwards.
type EntityTable[T any] struct {
	*Table
	mappings []FieldMapping[T]
}

// NewEntityTable creates an entity table with no mapped fields.
func NewEntityTable[T any](name string) *EntityTable[T] {
	return &EntityTable[T]{Table: NewTable(name)}
}

// MapValue maps a column of any kind, including nullable columns.
func (e *EntityTable[T]) MapValue(name string, fn func(T) value.Value) *FieldReference {
	return e.mapField(name, 0, fn)
}

// MapString maps a string column. maxLength of 0 means unbounded.
func (e *EntityTable[T]) MapString(name string, maxLength int, fn func(T) string) *FieldReference {
	return e.mapField(name, maxLength, func(entity T) value.Value { return value.String(fn(entity)) })
}

// MapInt maps a 32-bit integer column.
func (e *EntityTable[T]) MapInt(name string, fn func(T) int32) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return value.Int(fn(entity)) })
}

// MapLong maps a 64-bit integer column.
func (e *EntityTable[T]) MapLong(name string, fn func(T) int64) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return value.Long(fn(entity)) })
}

// MapBool maps a boolean column.
func (e *EntityTable[T]) MapBool(name string, fn func(T) bool) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return value.Bool(fn(entity)) })
}

// MapDecimal maps an exact decimal column.
func (e *EntityTable[T]) MapDecimal(name string, fn func(T) value.Decimal) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return fn(entity) })
}

// MapDateTime maps a date-time column.
func (e *EntityTable[T]) MapDateTime(name string, fn func(T) time.Time) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return value.DateTime(fn(entity)) })
}

// MapGUID maps a GUID column.
func (e *EntityTable[T]) MapGUID(name string, fn func(T) uuid.UUID) *FieldReference {
	return e.mapField(name, 0, func(entity T) value.Value { return value.GUID(fn(entity)) })
}

// MapBinary maps a binary column. maxLength of 0 means unbounded.
func (e *EntityTable[T]) MapBinary(name string, maxLength int, fn func(T) []byte) *FieldReference {
	return e.mapField(name, maxLength, func(entity T) value.Value { return value.Binary(fn(entity)) })
}

func (e *EntityTable[T]) mapField(name string, maxLength int, fn func(T) value.Value) *FieldReference {
	f := e.declare(name)
	e.mappings = append(e.mappings, FieldMapping[T]{Field: f, Extract: fn, MaxLength: maxLength})
	return f
}

// Mappings returns the field mappings in declaration order.
func (e *EntityTable[T]) Mappings() []FieldMapping[T] {
	out := make([]FieldMapping[T], len(e.mappings))
	copy(out, e.mappings)
	return out
}

// Insert builds an insert of entity with one column per mapping, in
// declaration order.
func (e *EntityTable[T]) Insert(entity T) *InsertQuery {
	q := NewInsertQuery(e.Name())
	for _, m := range e.mappings {
		q.SetBounded(m.Field.Name(), m.Extract(entity), m.MaxLength)
	}
	return q
}
