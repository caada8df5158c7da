package querysql

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is matched by errors.Is for any *UnknownTableError.
var ErrUnknownTable = errors.New("unknown table")

// UnknownTableError reports a field or table that was rendered in a query
// the table was never added to.
type UnknownTableError struct {
	TableName string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q: table was not added to the query", e.TableName)
}

// Is reports whether target is ErrUnknownTable.
func (e *UnknownTableError) Is(target error) bool {
	return target == ErrUnknownTable
}

// IsUnknownTable reports whether err is (or wraps) an unknown table error.
func IsUnknownTable(err error) bool {
	var unknown *UnknownTableError
	return errors.As(err, &unknown)
}
