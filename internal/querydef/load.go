package querydef

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Loader reads definition files from a filesystem.
type Loader struct {
	Fs afero.Fs
}

// NewLoader creates a loader over fs. A nil fs reads the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{Fs: fs}
}

// Load reads path and parses it by extension: .cue, .yaml or .yml.
func (l *Loader) Load(path string) (*Definition, error) {
	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, newError(ErrCodeRead, "", "reading %s: %v", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return ParseCUE(path, data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, newError(ErrCodeFormat, "", "unsupported definition file %s: want .cue, .yaml or .yml", path)
	}
}

// ParseCUE compiles data, unifies its query value with the embedded
// schema and decodes the result.
func ParseCUE(filename string, data []byte) (*Definition, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueError(ErrCodeParse, err)
	}

	queryVal := v.LookupPath(cue.ParsePath("query"))
	if !queryVal.Exists() {
		return nil, newError(ErrCodeSchema, "query", "missing query")
	}

	unified := schema.LookupPath(cue.ParsePath("#Query")).Unify(queryVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeSchema, err)
	}

	var def Definition
	if err := unified.Decode(&def); err != nil {
		return nil, cueError(ErrCodeSchema, err)
	}
	return &def, nil
}

// cueError converts a CUE error to a DefinitionError carrying the first
// reported position.
func cueError(code string, err error) *DefinitionError {
	defErr := &DefinitionError{Code: code, Message: cueerrors.Details(err, nil)}
	defErr.Message = strings.TrimSpace(defErr.Message)
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		defErr.Pos = positions[0]
	}
	return defErr
}

// ParseYAML decodes data strictly: unknown fields are errors.
func ParseYAML(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, newError(ErrCodeSchema, "", "%s", strings.Join(typeErr.Errors, "; "))
		}
		return nil, newError(ErrCodeParse, "", "parsing YAML: %v", err)
	}
	if file.Query.Tables == nil && file.Query.Select == nil && file.Query.Insert == nil {
		return nil, newError(ErrCodeSchema, "query", "missing query")
	}
	return &file.Query, nil
}
