package testutil

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/value"
)

// Param is a parameter recorded by RecordingFactory.
type Param struct {
	Name  string
	Kind  value.Kind
	Value any
}

// String renders the parameter as name:kind=value.
func (p Param) String() string {
	return fmt.Sprintf("%s:%s=%v", p.Name, p.Kind, p.Value)
}

// TooLongError is returned by RecordingFactory when a bounded string or
// binary parameter exceeds its max length.
type TooLongError struct {
	Name      string
	MaxLength int
	Actual    int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("parameter %s too long: max %d, got %d", e.Name, e.MaxLength, e.Actual)
}

// RecordingFactory is a parameter factory for tests. Every created
// parameter is returned as a Param and also appended to Created, so tests
// can inspect both the compiled parameter list and the factory calls.
//
// Thread-safety: all methods are safe for concurrent use.
type RecordingFactory struct {
	mu      sync.Mutex
	Created []Param
}

// NewRecordingFactory creates an empty recording factory.
func NewRecordingFactory() *RecordingFactory {
	return &RecordingFactory{}
}

func (f *RecordingFactory) record(name string, kind value.Kind, v any) (any, error) {
	p := Param{Name: name, Kind: kind, Value: v}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, p)
	return p, nil
}

// Calls returns a copy of the parameters created so far.
func (f *RecordingFactory) Calls() []Param {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Param, len(f.Created))
	copy(out, f.Created)
	return out
}

// Reset forgets all recorded parameters.
func (f *RecordingFactory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = nil
}

func (f *RecordingFactory) CreateStringParameter(name, v string, maxLength int) (any, error) {
	if n := utf8.RuneCountInString(v); maxLength > 0 && n > maxLength {
		return nil, &TooLongError{Name: name, MaxLength: maxLength, Actual: n}
	}
	return f.record(name, value.KindString, v)
}

func (f *RecordingFactory) CreateIntParameter(name string, v int32) (any, error) {
	return f.record(name, value.KindInt, v)
}

func (f *RecordingFactory) CreateLongParameter(name string, v int64) (any, error) {
	return f.record(name, value.KindLong, v)
}

func (f *RecordingFactory) CreateBoolParameter(name string, v bool) (any, error) {
	return f.record(name, value.KindBool, v)
}

func (f *RecordingFactory) CreateDecimalParameter(name string, v value.Decimal) (any, error) {
	return f.record(name, value.KindDecimal, v.String())
}

func (f *RecordingFactory) CreateDateTimeParameter(name string, v time.Time) (any, error) {
	return f.record(name, value.KindDateTime, v)
}

func (f *RecordingFactory) CreateGUIDParameter(name string, v uuid.UUID) (any, error) {
	return f.record(name, value.KindGUID, v)
}

func (f *RecordingFactory) CreateBinaryParameter(name string, v []byte, maxLength int) (any, error) {
	if maxLength > 0 && len(v) > maxLength {
		return nil, &TooLongError{Name: name, MaxLength: maxLength, Actual: len(v)}
	}
	return f.record(name, value.KindBinary, v)
}

func (f *RecordingFactory) CreateNullParameter(name string, kind value.Kind) (any, error) {
	return f.record(name, value.KindNull, nil)
}

func (f *RecordingFactory) CreateParameter(name string, v any) (any, error) {
	val, err := value.Of(v)
	if err != nil {
		return nil, err
	}
	return f.record(name, val.Kind(), v)
}

// Values returns the Value field of each Param in params, which must be
// the parameter list returned by a compile using a RecordingFactory.
func Values(params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p.(Param).Value
	}
	return out
}

// Names returns the Name field of each Param in params.
func Names(params []any) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.(Param).Name
	}
	return out
}
