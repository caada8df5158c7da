package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stroiman/dataaccess/internal/datatool"
	"github.com/stroiman/dataaccess/internal/querysql"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	DBPath string
	Limit  int
}

// ExecResult is the exec command's payload. Select queries fill Columns
// and Rows; inserts fill RowsAffected.
type ExecResult struct {
	File         string            `json:"file"`
	Kind         string            `json:"kind"`
	SQL          string            `json:"sql"`
	Columns      []string          `json:"columns,omitempty"`
	Rows         []datatool.Record `json:"rows,omitempty"`
	RowsAffected int64             `json:"rows_affected"`

	// values holds the rows in column order for the text table.
	values [][]any
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Run a query definition against the database",
		Long: `Build a query definition and run it against the configured SQLite database.

Select queries print their rows; inserts print the number of affected rows.
The database defaults to database.path from the configuration.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "database path (overrides database.path)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "print at most this many rows (0 prints all)")

	return cmd
}

func runExec(ctx context.Context, opts *ExecOptions, file string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	built, err := loadQuery(file)
	if err != nil {
		return formatter.Fail(err)
	}

	dbCfg := datatool.Config{Logger: opts.Logger}
	if opts.Settings != nil {
		dbCfg.Path = opts.Settings.Database.Path
		dbCfg.BusyTimeout = opts.Settings.Database.BusyTimeout
	}
	if opts.DBPath != "" {
		dbCfg.Path = opts.DBPath
	}
	formatter.VerboseLog("Opening database %s", dbCfg.Path)

	tool, err := datatool.Open(ctx, dbCfg)
	if err != nil {
		return formatter.Fail(&databaseError{err: err})
	}
	defer tool.Close()

	sql, params, err := tool.Compile(built.Query)
	if err != nil {
		return formatter.Fail(err)
	}
	result := &ExecResult{File: file, Kind: queryKind(built.Query), SQL: sql}

	if _, ok := built.Query.(*querysql.SelectQuery); ok {
		reader, err := tool.ExecuteReaderLimit(ctx, opts.Limit, sql, params...)
		if err != nil {
			return formatter.Fail(err)
		}
		result.Columns = reader.Columns()
		result.Rows = reader.Records()
		result.values = reader.Values()
	} else {
		n, err := tool.ExecuteNonQuery(ctx, sql, params...)
		if err != nil {
			return formatter.Fail(err)
		}
		result.RowsAffected = n
	}

	return outputExecSuccess(formatter, result)
}

func outputExecSuccess(formatter *OutputFormatter, result *ExecResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.VerboseLog("%s", result.SQL)

	if result.Kind == "insert" {
		formatter.Headline("%d row(s) affected", result.RowsAffected)
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
	for _, row := range result.values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	formatter.Headline("%d row(s)", len(result.Rows))
	return nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
