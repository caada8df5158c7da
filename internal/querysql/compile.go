package querysql

import (
	"errors"
	"fmt"
)

// SQLCompiler compiles queries to parameterized SQL.
//
// All values are parameterized through Factory, never interpolated.
// Compile is safe for concurrent use on distinct queries.
type SQLCompiler struct {
	Factory ParameterFactory
}

// NewSQLCompiler creates a compiler that creates parameters through factory.
func NewSQLCompiler(factory ParameterFactory) *SQLCompiler {
	return &SQLCompiler{Factory: factory}
}

// Compile is shorthand for NewSQLCompiler(factory).Compile(q).
func Compile(q Query, factory ParameterFactory) (string, []any, error) {
	return NewSQLCompiler(factory).Compile(q)
}

// Compile converts q to SQL and its ordered parameter list.
// Returns (sql, params, error) tuple.
//
// Compilation is all-or-nothing. Errors from the ParameterFactory are
// returned unchanged so callers can match them with errors.As.
func (c *SQLCompiler) Compile(q Query) (string, []any, error) {
	if q == nil {
		return "", nil, errors.New("cannot compile nil query")
	}
	if c.Factory == nil {
		return "", nil, errors.New("compiler has no parameter factory")
	}

	switch query := q.(type) {
	case *SelectQuery:
		return c.compileSelect(query)
	case *InsertQuery:
		return c.compileInsert(query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

// compileSelect renders
//
//	select <fields|*> from <tables>[ where <and>][ order by <fields>]
//
// with one context, so aliases and parameter numbers are consistent across
// the FROM list, WHERE and ORDER BY.
func (c *SQLCompiler) compileSelect(q *SelectQuery) (string, []any, error) {
	ctx := newBuildContext(c.Factory, q.aliases.resolve)

	ctx.write("select ")
	if err := c.compileSelectFields(ctx, q.selectFields); err != nil {
		return "", nil, err
	}

	ctx.write(" from ")
	for i, node := range q.tables {
		if i > 0 {
			ctx.write(", ")
		}
		if err := node.render(ctx); err != nil {
			return "", nil, err
		}
	}

	if q.where.Active() {
		ctx.write(" where ")
		if err := q.where.render(ctx); err != nil {
			return "", nil, err
		}
	}

	if len(q.sort) > 0 {
		ctx.write(" order by ")
		for i, s := range q.sort {
			if i > 0 {
				ctx.write(", ")
			}
			if err := s.Field.render(ctx); err != nil {
				return "", nil, err
			}
		}
	}

	sql, params := ctx.result()
	return sql, params, nil
}

// compileSelectFields renders the projection list.
// Example: [t1].[ID] as User_ID, [t1].[Name] as User_Name
func (c *SQLCompiler) compileSelectFields(ctx *buildContext, fields []*FieldReference) error {
	if len(fields) == 0 {
		ctx.write("*")
		return nil
	}

	for i, f := range fields {
		if i > 0 {
			ctx.write(", ")
		}
		alias, err := ctx.alias(f.table)
		if err != nil {
			return err
		}
		ctx.writeIdent(alias)
		ctx.write(".")
		ctx.writeIdent(f.name)
		ctx.write(" as " + f.table.name + "_" + f.name)
	}
	return nil
}

// compileInsert renders
//
//	insert into [<table>] ([f1], [f2]) values (@p1, @p2)
//
// Parameter numbering starts at p1.
func (c *SQLCompiler) compileInsert(q *InsertQuery) (string, []any, error) {
	if len(q.fields) == 0 {
		return "", nil, fmt.Errorf("insert into %q has no fields", q.tableName)
	}

	ctx := newBuildContext(c.Factory, nil)

	ctx.write("insert into ")
	ctx.writeIdent(q.tableName)
	ctx.write(" (")
	for i, f := range q.fields {
		if i > 0 {
			ctx.write(", ")
		}
		ctx.writeIdent(f.Name)
	}

	ctx.write(") values (")
	for i, f := range q.fields {
		if i > 0 {
			ctx.write(", ")
		}
		if err := ctx.bind(f.Value, f.MaxLength); err != nil {
			return "", nil, err
		}
	}
	ctx.write(")")

	sql, params := ctx.result()
	return sql, params, nil
}
