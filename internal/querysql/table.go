package querysql

// TableNode is a sealed interface over the entries of a FROM list: a single
// Table or a Join of two nodes.
type TableNode interface {
	// Fields returns the declared fields this node contributes when all of
	// its fields are projected. A join returns left fields, then right.
	Fields() []*FieldReference

	render(ctx *buildContext) error
	eachTable(fn func(*Table)) // Sealed; depth-first, left before right
}

// Table is a database table in a query. Identity is the pointer: two
// tables with the same name are distinct and get distinct aliases.
// A Table holds no per-query state and may be shared across queries.
type Table struct {
	name   string
	fields []*FieldReference
}

// NewTable creates a table with the given declared fields.
func NewTable(name string, fields ...string) *Table {
	t := &Table{name: name}
	for _, f := range fields {
		t.declare(f)
	}
	return t
}

func (t *Table) declare(name string) *FieldReference {
	if f := t.declared(name); f != nil {
		return f
	}
	f := &FieldReference{table: t, name: name}
	t.fields = append(t.fields, f)
	return f
}

func (t *Table) declared(name string) *FieldReference {
	for _, f := range t.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Field returns a reference to the named field. Declared fields return
// their shared reference; other names get a fresh, undeclared reference.
func (t *Table) Field(name string) *FieldReference {
	if f := t.declared(name); f != nil {
		return f
	}
	return &FieldReference{table: t, name: name}
}

// Fields returns the declared fields in declaration order.
func (t *Table) Fields() []*FieldReference {
	out := make([]*FieldReference, len(t.fields))
	copy(out, t.fields)
	return out
}

// LeftJoin starts a left outer join with t as the left operand.
func (t *Table) LeftJoin(right *Table) *Join {
	return NewJoin(t, right, JoinLeft)
}

// InnerJoin starts an inner join with t as the left operand.
func (t *Table) InnerJoin(right *Table) *Join {
	return NewJoin(t, right, JoinInner)
}

// SelectWhere returns a select over t with the given where-parts ANDed.
func (t *Table) SelectWhere(parts ...WherePart) *SelectQuery {
	q := NewSelectQuery()
	q.AddTable(t)
	for _, p := range parts {
		q.AddWhere(p)
	}
	return q
}

func (t *Table) render(ctx *buildContext) error {
	alias, err := ctx.alias(t)
	if err != nil {
		return err
	}
	ctx.writeIdent(t.name)
	ctx.write(" " + alias)
	return nil
}

func (t *Table) eachTable(fn func(*Table)) {
	fn(t)
}

// JoinType selects the join keyword.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
)

func (j JoinType) keyword() string {
	if j == JoinLeft {
		return "left outer join"
	}
	return "inner join"
}

func (j JoinType) String() string {
	if j == JoinLeft {
		return "left"
	}
	return "inner"
}

// Join is a binary join. The left operand may itself be a join, so chains
// render left to right: A join B on ... join C on ...
type Join struct {
	left     TableNode
	right    *Table
	joinType JoinType
	on       WherePart
}

// NewJoin creates a join of left and right. A join without an ON
// condition is valid and renders without the on fragment.
func NewJoin(left TableNode, right *Table, joinType JoinType) *Join {
	return &Join{left: left, right: right, joinType: joinType}
}

// On sets the join condition and returns j.
func (j *Join) On(condition WherePart) *Join {
	j.on = condition
	return j
}

// LeftJoin chains a left outer join with j as the left operand.
func (j *Join) LeftJoin(right *Table) *Join {
	return NewJoin(j, right, JoinLeft)
}

// InnerJoin chains an inner join with j as the left operand.
func (j *Join) InnerJoin(right *Table) *Join {
	return NewJoin(j, right, JoinInner)
}

// Left returns the left operand.
func (j *Join) Left() TableNode { return j.left }

// Right returns the right operand.
func (j *Join) Right() *Table { return j.right }

// Type returns the join type.
func (j *Join) Type() JoinType { return j.joinType }

// Condition returns the ON condition, or nil.
func (j *Join) Condition() WherePart { return j.on }

// Fields returns the left operand's fields followed by the right's.
func (j *Join) Fields() []*FieldReference {
	return append(j.left.Fields(), j.right.Fields()...)
}

func (j *Join) render(ctx *buildContext) error {
	if err := j.left.render(ctx); err != nil {
		return err
	}
	ctx.write(" " + j.joinType.keyword() + " ")
	if err := j.right.render(ctx); err != nil {
		return err
	}
	if j.on != nil && j.on.Active() {
		ctx.write(" on ")
		if err := j.on.render(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (j *Join) eachTable(fn func(*Table)) {
	j.left.eachTable(fn)
	j.right.eachTable(fn)
}
