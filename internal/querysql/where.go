package querysql

import (
	"time"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/value"
)

// WherePart is a sealed interface over predicate tree nodes.
//
// Active reports whether the part contributes to the rendered SQL. It has
// no side effects. Inactive parts are skipped entirely: they write no text
// and create no parameter.
type WherePart interface {
	Active() bool
	render(ctx *buildContext) error
}

// FieldReference is a column of a specific Table. It renders as
// <alias>.[<name>].
type FieldReference struct {
	table *Table
	name  string
}

// Table returns the table the field belongs to.
func (f *FieldReference) Table() *Table { return f.table }

// Name returns the column name.
func (f *FieldReference) Name() string { return f.name }

// Active is always true for a field reference.
func (f *FieldReference) Active() bool { return true }

// EqualTo returns f = other.
func (f *FieldReference) EqualTo(other WherePart) *EqualsClause {
	return Equals(f, other)
}

// LessThan returns f < other.
func (f *FieldReference) LessThan(other WherePart) *LessThanClause {
	return LessThan(f, other)
}

// Like returns f LIKE text%.
func (f *FieldReference) Like(text string) *LikeClause {
	return Like(f, text)
}

// StartsWith returns f LIKE text%.
func (f *FieldReference) StartsWith(text string) *StartsWithClause {
	return StartsWith(f, text)
}

// IsNull returns f IS NULL.
func (f *FieldReference) IsNull() *IsNullClause {
	return IsNull(f)
}

func (f *FieldReference) render(ctx *buildContext) error {
	alias, err := ctx.alias(f.table)
	if err != nil {
		return err
	}
	ctx.write(alias + ".")
	ctx.writeIdent(f.name)
	return nil
}

// Constant is a literal bound as a single parameter. MaxLength bounds
// string and binary values; 0 means unbounded.
type Constant struct {
	Value     value.Value
	MaxLength int
}

// IntConstant returns a 32-bit integer literal.
func IntConstant(v int32) *Constant { return &Constant{Value: value.Int(v)} }

// LongConstant returns a 64-bit integer literal.
func LongConstant(v int64) *Constant { return &Constant{Value: value.Long(v)} }

// BoolConstant returns a boolean literal.
func BoolConstant(v bool) *Constant { return &Constant{Value: value.Bool(v)} }

// StringConstant returns an unbounded string literal.
func StringConstant(v string) *Constant { return &Constant{Value: value.String(v)} }

// DecimalConstant returns an exact decimal literal.
func DecimalConstant(v value.Decimal) *Constant { return &Constant{Value: v} }

// DateTimeConstant returns a date-time literal.
func DateTimeConstant(v time.Time) *Constant { return &Constant{Value: value.DateTime(v)} }

// GUIDConstant returns a GUID literal.
func GUIDConstant(v uuid.UUID) *Constant { return &Constant{Value: value.GUID(v)} }

// BinaryConstant returns a byte-string literal.
func BinaryConstant(v []byte) *Constant { return &Constant{Value: value.Binary(v)} }

// NullConstant returns a NULL literal bound as the given kind.
func NullConstant(kind value.Kind) *Constant { return &Constant{Value: value.Null{Of: kind}} }

// Active is always true for a constant.
func (c *Constant) Active() bool { return true }

func (c *Constant) render(ctx *buildContext) error {
	return ctx.bind(c.Value, c.MaxLength)
}

// EqualsClause renders <left>=<right>.
type EqualsClause struct {
	Left, Right WherePart
}

// Equals returns left = right.
func Equals(left, right WherePart) *EqualsClause {
	return &EqualsClause{Left: left, Right: right}
}

func (c *EqualsClause) Active() bool { return true }

func (c *EqualsClause) render(ctx *buildContext) error {
	return renderInfix(ctx, c.Left, "=", c.Right)
}

// LessThanClause renders <left> < <right>.
type LessThanClause struct {
	Left, Right WherePart
}

// LessThan returns left < right.
func LessThan(left, right WherePart) *LessThanClause {
	return &LessThanClause{Left: left, Right: right}
}

func (c *LessThanClause) Active() bool { return true }

func (c *LessThanClause) render(ctx *buildContext) error {
	return renderInfix(ctx, c.Left, " < ", c.Right)
}

func renderInfix(ctx *buildContext, left WherePart, op string, right WherePart) error {
	if err := left.render(ctx); err != nil {
		return err
	}
	ctx.write(op)
	return right.render(ctx)
}

// LikeClause renders <left> LIKE @pN and binds Text + "%".
type LikeClause struct {
	Left WherePart
	Text string
}

// Like returns left LIKE text%.
func Like(left WherePart, text string) *LikeClause {
	return &LikeClause{Left: left, Text: text}
}

func (c *LikeClause) Active() bool { return true }

func (c *LikeClause) render(ctx *buildContext) error {
	return renderPrefixMatch(ctx, c.Left, c.Text)
}

// StartsWithClause matches rows where Left begins with Text.
// It renders the same SQL as LikeClause.
type StartsWithClause struct {
	Left WherePart
	Text string
}

// StartsWith returns left LIKE text%.
func StartsWith(left WherePart, text string) *StartsWithClause {
	return &StartsWithClause{Left: left, Text: text}
}

func (c *StartsWithClause) Active() bool { return true }

func (c *StartsWithClause) render(ctx *buildContext) error {
	return renderPrefixMatch(ctx, c.Left, c.Text)
}

func renderPrefixMatch(ctx *buildContext, left WherePart, text string) error {
	if err := left.render(ctx); err != nil {
		return err
	}
	ctx.write(" LIKE ")
	return ctx.bind(value.String(text+"%"), 0)
}

// IsNullClause renders <field> IS NULL.
type IsNullClause struct {
	Field WherePart
}

// IsNull returns field IS NULL.
func IsNull(field WherePart) *IsNullClause {
	return &IsNullClause{Field: field}
}

func (c *IsNullClause) Active() bool { return true }

func (c *IsNullClause) render(ctx *buildContext) error {
	if err := c.Field.render(ctx); err != nil {
		return err
	}
	ctx.write(" IS NULL")
	return nil
}
