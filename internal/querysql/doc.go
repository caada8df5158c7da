// Package querysql provides the query object model and the compiler that
// turns it into parameterized SQL.
//
// ARCHITECTURE:
//
// A query is built from three node families, all sealed to this package:
//
//	[TableNode]  Table, Join                          → FROM list
//	[WherePart]  FieldReference, Constant, clauses    → WHERE / ON / ORDER BY
//	[Query]      SelectQuery, InsertQuery             → statement
//
// SQLCompiler walks a Query with a fresh build context per call. The context
// owns the output buffer, the parameter list, the ParameterFactory and the
// alias resolver. Every node renders itself into that context; nothing is
// stored on the nodes, so tables and where-parts can be shared across
// queries and goroutines.
//
// PARAMETERS:
//
// Literal values are never interpolated. Each literal appends a placeholder
// @pN, where N is the number of parameters created so far plus one, and
// pushes exactly one parameter created through the ParameterFactory. The
// factory decides what a parameter handle is; the compiler threads it
// through untouched. Factory errors abort compilation and are returned
// unchanged.
//
// ACTIVE PARTS:
//
// Every WherePart reports whether it is active. Inactive parts render
// nothing and bind nothing. An AND/OR clause is active when any child is,
// renders a single active child bare, and parenthesizes two or more. A
// SelectQuery whose WHERE has no active parts omits the where keyword.
//
// ALIASES:
//
// SelectQuery.AddTable assigns t1, t2, ... to every Table reachable from the
// added node, depth-first, left operand before right. Aliases are keyed by
// pointer identity, so two Table values with the same name get distinct
// aliases.
//
// Example:
//
//	users := querysql.NewTable("User", "ID", "Name")
//	q := users.SelectWhere(users.Field("ID").EqualTo(querysql.IntConstant(1)))
//	sql, params, err := querysql.NewSQLCompiler(factory).Compile(q)
//	// select * from [User] t1 where t1.[ID]=@p1
package querysql
