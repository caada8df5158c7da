package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/stroiman/dataaccess/internal/datatool"
	"github.com/stroiman/dataaccess/internal/querydef"
	"github.com/stroiman/dataaccess/internal/querysql"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Statement failed against the database
	ExitCommandError = 2 // Command error (bad definition, missing file, bad config, etc.)
)

// CLI error codes. Definition errors carry their own E1xx codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeConfig      = "E002" // Configuration could not be loaded
	ErrCodeCompile     = "E003" // Query failed to compile
	ErrCodeParameter   = "E004" // Parameter exceeds its max length
	ErrCodeDatabase    = "E005" // Database open or statement error
	ErrCodeWriteFailed = "E006" // File write error
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	Color     bool // Colorize text output
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E105", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

func (f *OutputFormatter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Headline prints a green check mark followed by the message.
func (f *OutputFormatter) Headline(format string, args ...any) {
	f.paint(color.FgGreen, color.Bold).Fprintf(f.Writer, "✓ "+format+"\n", args...)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	f.paint(color.FgRed, color.Bold).Fprintf(f.Writer, "Error [%s]", code)
	fmt.Fprintf(f.Writer, ": %s\n", message)
	if details != nil {
		f.paint(color.Underline).Fprintf(f.Writer, "  at %v\n", details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Fail reports err through the formatter and returns the ExitError the
// command should exit with.
func (f *OutputFormatter) Fail(err error) error {
	code, message, details := describeError(err)
	_ = f.Error(code, message, details)
	return WrapExitError(exitCodeFor(err), code, err)
}

// describeError maps an error to a CLI error code, message and optional
// location.
func describeError(err error) (string, string, any) {
	var defErr *querydef.DefinitionError
	if errors.As(err, &defErr) {
		var loc any
		if defErr.Pos.IsValid() {
			loc = fmt.Sprintf("%s:%d:%d", defErr.Pos.Filename(), defErr.Pos.Line(), defErr.Pos.Column())
		} else if defErr.Path != "" {
			loc = defErr.Path
		}
		return defErr.Code, defErr.Message, loc
	}

	var tooLong *datatool.ParameterTooLongError
	if errors.As(err, &tooLong) {
		return ErrCodeParameter, tooLong.Error(), nil
	}

	var execErr *datatool.ExecError
	if errors.As(err, &execErr) {
		return ErrCodeDatabase, execErr.Err.Error(), execErr.SQL
	}

	var configErr *configError
	if errors.As(err, &configErr) {
		return ErrCodeConfig, configErr.Error(), nil
	}

	var dbErr *databaseError
	if errors.As(err, &dbErr) {
		return ErrCodeDatabase, dbErr.Error(), nil
	}

	if querysql.IsUnknownTable(err) {
		return ErrCodeCompile, err.Error(), nil
	}
	var compileErr *compileError
	if errors.As(err, &compileErr) {
		return ErrCodeCompile, compileErr.Error(), nil
	}

	return ErrCodeGeneric, err.Error(), nil
}

// exitCodeFor returns ExitFailure for errors raised while running a
// statement and ExitCommandError for everything else.
func exitCodeFor(err error) int {
	var execErr *datatool.ExecError
	if errors.As(err, &execErr) {
		return ExitFailure
	}
	return ExitCommandError
}

// configError marks a configuration loading failure.
type configError struct{ err error }

func (e *configError) Error() string { return "loading config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// databaseError marks a failure to open or set up the database.
type databaseError struct{ err error }

func (e *databaseError) Error() string { return "opening database: " + e.err.Error() }
func (e *databaseError) Unwrap() error { return e.err }

// compileError marks a failure in the SQL compiler that is not a
// definition or parameter problem.
type compileError struct{ err error }

func (e *compileError) Error() string { return "compiling query: " + e.err.Error() }
func (e *compileError) Unwrap() error { return e.err }
