package querysql

import "github.com/stroiman/dataaccess/internal/value"

// Query is a sealed interface over compilable statements.
//
// Query types:
//   - SelectQuery: projection, FROM list, WHERE, ORDER BY
//   - InsertQuery: single-row insert into one table
type Query interface {
	queryNode() // Sealed
}

// SortExpression orders results by a field, ascending.
type SortExpression struct {
	Field *FieldReference
}

// Ascending returns a sort expression over f.
func (f *FieldReference) Ascending() SortExpression {
	return SortExpression{Field: f}
}

// SelectQuery is a SELECT statement under construction.
//
// Aliases are assigned when tables are added, not at compile time. A
// SelectQuery must not be modified while it is being compiled.
type SelectQuery struct {
	tables       []TableNode
	selectFields []*FieldReference
	where        *OperatorClause
	sort         []SortExpression
	aliases      *aliasMap
}

// NewSelectQuery creates an empty select. With no projected fields it
// selects *.
func NewSelectQuery() *SelectQuery {
	return &SelectQuery{
		where:   And(),
		aliases: newAliasMap(),
	}
}

func (*SelectQuery) queryNode() {}

// AddTable appends node to the FROM list and assigns aliases to every
// table it contains. Adding the same *Table twice panics.
func (q *SelectQuery) AddTable(node TableNode) *SelectQuery {
	q.aliases.add(node)
	q.tables = append(q.tables, node)
	return q
}

// AddSelectField projects f.
func (q *SelectQuery) AddSelectField(f *FieldReference) *SelectQuery {
	q.selectFields = append(q.selectFields, f)
	return q
}

// AddSelectFields projects every declared field of node, in order.
func (q *SelectQuery) AddSelectFields(node TableNode) *SelectQuery {
	q.selectFields = append(q.selectFields, node.Fields()...)
	return q
}

// AddWhere ANDs p into the WHERE clause. A nil part is ignored.
func (q *SelectQuery) AddWhere(p WherePart) *SelectQuery {
	q.where.AddPart(p)
	return q
}

// AddSortExpression appends s to the ORDER BY list.
func (q *SelectQuery) AddSortExpression(s SortExpression) *SelectQuery {
	q.sort = append(q.sort, s)
	return q
}

// OrderBy appends an ascending sort on f.
func (q *SelectQuery) OrderBy(f *FieldReference) *SelectQuery {
	return q.AddSortExpression(f.Ascending())
}

// Tables returns the FROM list.
func (q *SelectQuery) Tables() []TableNode {
	out := make([]TableNode, len(q.tables))
	copy(out, q.tables)
	return out
}

// SelectFields returns the projected fields. Empty means *.
func (q *SelectQuery) SelectFields() []*FieldReference {
	out := make([]*FieldReference, len(q.selectFields))
	copy(out, q.selectFields)
	return out
}

// WhereClause returns the top-level AND clause.
func (q *SelectQuery) WhereClause() *OperatorClause { return q.where }

// SortExpressions returns the ORDER BY list.
func (q *SelectQuery) SortExpressions() []SortExpression {
	out := make([]SortExpression, len(q.sort))
	copy(out, q.sort)
	return out
}

// FindTable returns the first table added under name, or nil.
func (q *SelectQuery) FindTable(name string) *Table {
	return q.aliases.find(name)
}

// Alias returns the alias assigned to t.
func (q *SelectQuery) Alias(t *Table) (string, error) {
	return q.aliases.resolve(t)
}

// InsertField is one column of an InsertQuery.
type InsertField struct {
	Name      string
	Value     value.Value
	MaxLength int
}

// InsertQuery inserts a single row into a table.
type InsertQuery struct {
	tableName string
	fields    []InsertField
}

// NewInsertQuery creates an insert into tableName.
func NewInsertQuery(tableName string) *InsertQuery {
	return &InsertQuery{tableName: tableName}
}

func (*InsertQuery) queryNode() {}

// Set appends an unbounded column value.
func (q *InsertQuery) Set(field string, v value.Value) *InsertQuery {
	return q.SetBounded(field, v, 0)
}

// SetBounded appends a column value whose string or binary length may not
// exceed maxLength.
func (q *InsertQuery) SetBounded(field string, v value.Value, maxLength int) *InsertQuery {
	q.fields = append(q.fields, InsertField{Name: field, Value: v, MaxLength: maxLength})
	return q
}

// TableName returns the target table.
func (q *InsertQuery) TableName() string { return q.tableName }

// Fields returns the column values in insertion order.
func (q *InsertQuery) Fields() []InsertField {
	out := make([]InsertField, len(q.fields))
	copy(out, q.fields)
	return out
}
