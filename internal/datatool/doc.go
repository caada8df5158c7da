// Package datatool executes compiled queries against a SQLite database.
//
// DataTool owns one database connection and, optionally, one active
// transaction. It is also a querysql.ParameterFactory: parameters are
// created as sql.NamedArg values so the @pN placeholders emitted by the
// compiler bind by name.
//
// # Execute Family
//
//   - ExecuteNonQuery: run a statement, return rows affected
//   - ExecuteScalar: first column of first row, NULL as nil
//   - ExecuteReader: all rows as Records
//   - ExecuteReaderLimit: at most n rows
//   - ExecuteReaderSingleRow: first row, or sql.ErrNoRows
//   - ExecuteQuery / Execute: compile a querysql.Query, then run it
//
// Every execute and transaction method fails with ErrDisposed after Close.
// Driver errors are wrapped in *ExecError carrying the SQL text. Parameter
// errors from the factory are returned unchanged.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout from Config (default 5s)
//   - Foreign key enforcement
//   - Single open connection, since SQLite allows one writer
package datatool
