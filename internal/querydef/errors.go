package querydef

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for definition loading and building.
const (
	ErrCodeRead      = "E101" // File missing or unreadable
	ErrCodeFormat    = "E102" // Unsupported file extension
	ErrCodeParse     = "E103" // CUE or YAML syntax error
	ErrCodeSchema    = "E104" // Definition does not match the schema
	ErrCodeReference = "E105" // Unknown table key or malformed field reference
	ErrCodeValue     = "E106" // Unparseable decimal, date-time or GUID literal
	ErrCodeShape     = "E107" // Wrong number of alternatives set
	ErrCodeDuplicate = "E108" // Table used twice in one FROM list
)

// DefinitionError reports a problem with a definition file. Path locates
// the offending element, e.g. select.where[1].equals[0].
type DefinitionError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *DefinitionError) Error() string {
	loc := e.Path
	if e.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%d:%d", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	if loc != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, path, format string, args ...any) *DefinitionError {
	return &DefinitionError{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}
