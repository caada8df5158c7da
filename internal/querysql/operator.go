package querysql

import "strings"

// Operator names accepted by OperatorClause.
const (
	OpAnd = "AND"
	OpOr  = "OR"
)

// OperatorClause joins its active children with " <operator> ".
//
// It is active when any child is active. Zero active children render
// nothing, one renders bare, two or more render parenthesized.
type OperatorClause struct {
	operator string
	parts    []WherePart
}

// NewOperatorClause creates a clause for the given operator. Nil parts are
// ignored.
func NewOperatorClause(operator string, parts ...WherePart) *OperatorClause {
	c := &OperatorClause{operator: strings.ToUpper(operator)}
	for _, p := range parts {
		c.AddPart(p)
	}
	return c
}

// And returns the conjunction of parts.
func And(parts ...WherePart) *OperatorClause {
	return NewOperatorClause(OpAnd, parts...)
}

// Or returns the disjunction of parts.
func Or(parts ...WherePart) *OperatorClause {
	return NewOperatorClause(OpOr, parts...)
}

// AddPart appends p. A nil part is ignored.
func (c *OperatorClause) AddPart(p WherePart) {
	if p == nil {
		return
	}
	c.parts = append(c.parts, p)
}

// Operator returns the operator keyword.
func (c *OperatorClause) Operator() string { return c.operator }

// Parts returns all children, active or not.
func (c *OperatorClause) Parts() []WherePart {
	out := make([]WherePart, len(c.parts))
	copy(out, c.parts)
	return out
}

// Count returns the number of children.
func (c *OperatorClause) Count() int { return len(c.parts) }

// Empty reports whether the clause has no children.
func (c *OperatorClause) Empty() bool { return len(c.parts) == 0 }

// Active reports whether any child is active.
func (c *OperatorClause) Active() bool {
	for _, p := range c.parts {
		if p.Active() {
			return true
		}
	}
	return false
}

func (c *OperatorClause) activeParts() []WherePart {
	var active []WherePart
	for _, p := range c.parts {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

func (c *OperatorClause) render(ctx *buildContext) error {
	active := c.activeParts()
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0].render(ctx)
	}

	ctx.write("(")
	for i, p := range active {
		if i > 0 {
			ctx.write(" " + c.operator + " ")
		}
		if err := p.render(ctx); err != nil {
			return err
		}
	}
	ctx.write(")")
	return nil
}
