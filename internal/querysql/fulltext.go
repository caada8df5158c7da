package querysql

import "github.com/stroiman/dataaccess/internal/value"

// FullTextClause renders contains(<f1>,<f2>,...,@pN).
//
// The clause is inactive when the search text matches everything: empty,
// "*" or "\"*\"". The search text is bound unchanged.
type FullTextClause struct {
	SearchText string
	Fields     []*FieldReference
}

// FullText returns a full-text search for text over fields.
func FullText(text string, fields ...*FieldReference) *FullTextClause {
	return &FullTextClause{SearchText: text, Fields: fields}
}

// Active reports whether the search text restricts the result.
func (c *FullTextClause) Active() bool {
	switch c.SearchText {
	case "", "*", `"*"`:
		return false
	}
	return true
}

func (c *FullTextClause) render(ctx *buildContext) error {
	if !c.Active() {
		return nil
	}
	ctx.write("contains(")
	for _, f := range c.Fields {
		if err := f.render(ctx); err != nil {
			return err
		}
		ctx.write(",")
	}
	if err := ctx.bind(value.String(c.SearchText), 0); err != nil {
		return err
	}
	ctx.write(")")
	return nil
}
