package datatool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stroiman/dataaccess/internal/querysql"
)

// DefaultBusyTimeout is used when Config.BusyTimeout is zero.
const DefaultBusyTimeout = 5 * time.Second

// Config configures Open.
type Config struct {
	// Path is the SQLite database file, or ":memory:".
	Path string

	// BusyTimeout is how long SQLite waits on a locked database.
	BusyTimeout time.Duration

	// Logger receives statement logs at debug level. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// querier is the subset of *sql.DB and *sql.Tx used for execution.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DataTool runs SQL against a SQLite database.
//
// Thread-safety: methods are safe for concurrent use. Statements issued
// while a transaction is active run inside that transaction.
type DataTool struct {
	mu       sync.Mutex
	db       *sql.DB
	tx       *sql.Tx
	disposed bool
	logger   *slog.Logger
}

// Open creates or opens the SQLite database at cfg.Path and applies the
// connection pragmas.
func Open(ctx context.Context, cfg Config) (*DataTool, error) {
	if cfg.Path == "" {
		return nil, errors.New("database path is required")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = DefaultBusyTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db, cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	logger.Debug("database opened", "path", cfg.Path)
	return &DataTool{db: db, logger: logger}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB, busyTimeout time.Duration) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close releases the connection, rolling back any active transaction.
// Calling Close more than once is a no-op.
func (d *DataTool) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return nil
	}
	d.disposed = true

	if d.tx != nil {
		_ = d.tx.Rollback()
		d.tx = nil
	}
	return d.db.Close()
}

// DB returns the underlying sql.DB.
func (d *DataTool) DB() *sql.DB {
	return d.db
}

// conn returns the active transaction, or the database when none is active.
func (d *DataTool) conn() (querier, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return nil, ErrDisposed
	}
	if d.tx != nil {
		return d.tx, nil
	}
	return d.db, nil
}

// BeginTransaction starts a transaction used by subsequent statements.
func (d *DataTool) BeginTransaction(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return ErrDisposed
	}
	if d.tx != nil {
		return ErrTransactionActive
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	d.tx = tx
	d.logger.Debug("transaction started")
	return nil
}

// CommitTransaction commits the active transaction.
func (d *DataTool) CommitTransaction() error {
	return d.endTransaction("commit", (*sql.Tx).Commit)
}

// RollbackTransaction rolls back the active transaction.
func (d *DataTool) RollbackTransaction() error {
	return d.endTransaction("rollback", (*sql.Tx).Rollback)
}

func (d *DataTool) endTransaction(action string, end func(*sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return ErrDisposed
	}
	if d.tx == nil {
		return fmt.Errorf("cannot %s: %w", action, ErrNoTransaction)
	}

	tx := d.tx
	d.tx = nil
	if err := end(tx); err != nil {
		return fmt.Errorf("%s transaction: %w", action, err)
	}
	d.logger.Debug("transaction ended", "action", action)
	return nil
}

// ExecuteNonQuery runs a statement that returns no rows and reports the
// number of rows affected.
func (d *DataTool) ExecuteNonQuery(ctx context.Context, query string, args ...any) (int64, error) {
	q, err := d.conn()
	if err != nil {
		return 0, err
	}
	d.logStatement("non-query", query, args)

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &ExecError{SQL: query, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &ExecError{SQL: query, Err: err}
	}
	return n, nil
}

// ExecuteScalar returns the first column of the first row. A NULL value
// or an empty result returns nil.
func (d *DataTool) ExecuteScalar(ctx context.Context, query string, args ...any) (any, error) {
	reader, err := d.read(ctx, query, args, 1)
	if err != nil {
		return nil, err
	}
	if reader.Len() == 0 || len(reader.Columns()) == 0 {
		return nil, nil
	}
	return reader.Values()[0][0], nil
}

// ExecuteReader runs a query and reads every row.
func (d *DataTool) ExecuteReader(ctx context.Context, query string, args ...any) (*Reader, error) {
	return d.read(ctx, query, args, 0)
}

// ExecuteReaderLimit runs a query and stops reading after limit rows. A
// limit of zero or less reads every row.
func (d *DataTool) ExecuteReaderLimit(ctx context.Context, limit int, query string, args ...any) (*Reader, error) {
	return d.read(ctx, query, args, limit)
}

// ExecuteReaderSingleRow runs a query and returns its first row, or
// sql.ErrNoRows when there is none.
func (d *DataTool) ExecuteReaderSingleRow(ctx context.Context, query string, args ...any) (Record, error) {
	reader, err := d.read(ctx, query, args, 1)
	if err != nil {
		return nil, err
	}
	if reader.Len() == 0 {
		return nil, sql.ErrNoRows
	}
	return reader.Records()[0], nil
}

// ExecuteQuery compiles q with d as the parameter factory and reads every
// row of the result.
func (d *DataTool) ExecuteQuery(ctx context.Context, q querysql.Query) (*Reader, error) {
	sqlText, params, err := d.Compile(q)
	if err != nil {
		return nil, err
	}
	return d.ExecuteReader(ctx, sqlText, params...)
}

// Execute compiles q with d as the parameter factory and runs it as a
// non-query, typically an InsertQuery.
func (d *DataTool) Execute(ctx context.Context, q querysql.Query) (int64, error) {
	sqlText, params, err := d.Compile(q)
	if err != nil {
		return 0, err
	}
	return d.ExecuteNonQuery(ctx, sqlText, params...)
}

// Compile compiles q with d as the parameter factory.
func (d *DataTool) Compile(q querysql.Query) (string, []any, error) {
	return querysql.NewSQLCompiler(d).Compile(q)
}

func (d *DataTool) read(ctx context.Context, query string, args []any, limit int) (*Reader, error) {
	q, err := d.conn()
	if err != nil {
		return nil, err
	}
	d.logStatement("reader", query, args)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ExecError{SQL: query, Err: err}
	}
	defer rows.Close()

	reader, err := scanRows(rows, limit)
	if err != nil {
		return nil, &ExecError{SQL: query, Err: err}
	}
	return reader, nil
}

func (d *DataTool) logStatement(kind, query string, args []any) {
	d.logger.Debug("executing sql",
		"kind", kind,
		"sql", query,
		"params", len(args),
	)
}
