package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/stroiman/dataaccess/internal/querydef"
	"github.com/stroiman/dataaccess/internal/querysql"
	"github.com/stroiman/dataaccess/internal/watch"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	Watch  bool
}

// CompileResult is the compile command's payload.
type CompileResult struct {
	File       string             `json:"file"`
	Kind       string             `json:"kind"` // select | insert
	SQL        string             `json:"sql"`
	Parameters []PreviewParameter `json:"parameters"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a query definition to SQL",
		Long: `Compile a query definition (.cue, .yaml or .yml) to parameterized SQL.

The definition is validated, built into a query and compiled with a preview
parameter factory. The SQL and the parameter values are printed; nothing
touches the database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result as JSON to this file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "recompile when the file changes")

	return cmd
}

func runCompile(opts *CompileOptions, file string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	err := compileOnce(opts, formatter, file)
	if !opts.Watch {
		return err
	}

	w, werr := watch.New(file, 0, func() error {
		formatter.VerboseLog("Change detected in %s", file)
		return compileOnce(opts, formatter, file)
	})
	if werr != nil {
		return formatter.Fail(werr)
	}
	formatter.VerboseLog("Watching %s", file)
	return w.Run(cmd.Context())
}

func compileOnce(opts *CompileOptions, formatter *OutputFormatter, file string) error {
	result, err := compileFile(file)
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Compiled %s with %d parameter(s)", file, len(result.Parameters))

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed, err)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// loadQuery reads and builds the definition in file.
func loadQuery(file string) (*querydef.Built, error) {
	def, err := querydef.NewLoader(afero.NewOsFs()).Load(file)
	if err != nil {
		return nil, err
	}
	return def.Build()
}

func compileFile(file string) (*CompileResult, error) {
	built, err := loadQuery(file)
	if err != nil {
		return nil, err
	}

	sql, params, err := querysql.Compile(built.Query, previewFactory{})
	if err != nil {
		return nil, &compileError{err: err}
	}

	result := &CompileResult{
		File:       file,
		Kind:       queryKind(built.Query),
		SQL:        sql,
		Parameters: make([]PreviewParameter, len(params)),
	}
	for i, p := range params {
		result.Parameters[i] = p.(PreviewParameter)
	}
	return result, nil
}

func queryKind(q querysql.Query) string {
	if _, ok := q.(*querysql.InsertQuery); ok {
		return "insert"
	}
	return "select"
}

// outputCompileSuccess outputs a successful compilation.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.Headline("Compiled %s from %s", result.Kind, result.File)
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintln(formatter.Writer, result.SQL)
	fmt.Fprintln(formatter.Writer)

	if len(result.Parameters) == 0 {
		fmt.Fprintln(formatter.Writer, "Parameters: none")
	} else {
		fmt.Fprintln(formatter.Writer, "Parameters:")
		for _, p := range result.Parameters {
			fmt.Fprintf(formatter.Writer, "  %s\n", p)
		}
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "\nWrote result to %s\n", outputFile)
	}
	return nil
}

// writeResultToFile writes the compile result as indented JSON.
func writeResultToFile(result *CompileResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
