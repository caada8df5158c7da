package datatool

import (
	"errors"
	"fmt"

	"github.com/stroiman/dataaccess/internal/value"
)

var (
	// ErrDisposed is returned by every execute or transaction method after
	// Close.
	ErrDisposed = errors.New("data tool has been disposed")

	// ErrTransactionActive is returned by BeginTransaction when a
	// transaction is already running.
	ErrTransactionActive = errors.New("transaction already started")

	// ErrNoTransaction is returned by CommitTransaction and
	// RollbackTransaction when no transaction is running.
	ErrNoTransaction = errors.New("transaction was not started")

	// ErrParameterTooLong is matched by errors.Is for any
	// *ParameterTooLongError.
	ErrParameterTooLong = errors.New("parameter too long")

	// ErrUnexpectedNull is matched by errors.Is for any *UnexpectedNullError.
	ErrUnexpectedNull = errors.New("field returned NULL which was not allowed")
)

// ParameterTooLongError reports a string or binary value longer than the
// declared maximum. String lengths are counted in runes, binary in bytes.
type ParameterTooLongError struct {
	Kind          value.Kind
	ParameterName string
	MaxLength     int
	ActualLength  int
}

func (e *ParameterTooLongError) Error() string {
	return fmt.Sprintf("%s parameter @%s too long: max length %d, actual length %d",
		e.Kind, e.ParameterName, e.MaxLength, e.ActualLength)
}

// Is reports whether target is ErrParameterTooLong.
func (e *ParameterTooLongError) Is(target error) bool {
	return target == ErrParameterTooLong
}

// ExecError wraps a driver error with the SQL that caused it.
type ExecError struct {
	SQL string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("error executing sql query: %s: %v", e.SQL, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// UnexpectedNullError reports a NULL read by an accessor that does not
// allow NULL.
type UnexpectedNullError struct {
	Field string
}

func (e *UnexpectedNullError) Error() string {
	return fmt.Sprintf("cannot get value for field %s: field returned NULL which was not allowed", e.Field)
}

// Is reports whether target is ErrUnexpectedNull.
func (e *UnexpectedNullError) Is(target error) bool {
	return target == ErrUnexpectedNull
}

// UnknownFieldError reports a field name absent from a record.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("record has no field %q", e.Field)
}

// FieldTypeError reports a field whose value cannot be read as the
// requested type.
type FieldTypeError struct {
	Field  string
	Want   string
	Actual any
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %s: cannot read %T as %s", e.Field, e.Actual, e.Want)
}

// IsParameterTooLong reports whether err is (or wraps) a
// *ParameterTooLongError.
func IsParameterTooLong(err error) bool {
	var tooLong *ParameterTooLongError
	return errors.As(err, &tooLong)
}

// IsDisposed reports whether err is (or wraps) ErrDisposed.
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}
