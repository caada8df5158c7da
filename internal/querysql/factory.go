package querysql

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/value"
)

// ParameterFactory creates backend-specific parameter handles.
//
// The compiler calls exactly one method per literal it renders, passing the
// parameter name without the leading '@'. The returned handle is opaque to
// the compiler and ends up, in render order, in the parameter list returned
// by Compile. A maxLength of 0 means unbounded.
type ParameterFactory interface {
	CreateStringParameter(name, v string, maxLength int) (any, error)
	CreateIntParameter(name string, v int32) (any, error)
	CreateLongParameter(name string, v int64) (any, error)
	CreateBoolParameter(name string, v bool) (any, error)
	CreateDecimalParameter(name string, v value.Decimal) (any, error)
	CreateDateTimeParameter(name string, v time.Time) (any, error)
	CreateGUIDParameter(name string, v uuid.UUID) (any, error)
	CreateBinaryParameter(name string, v []byte, maxLength int) (any, error)
	CreateNullParameter(name string, kind value.Kind) (any, error)

	// CreateParameter creates a parameter whose type is inferred from v.
	CreateParameter(name string, v any) (any, error)
}

// createParameter dispatches v to the factory method for its kind.
// Errors from the factory are returned unchanged.
func createParameter(f ParameterFactory, name string, v value.Value, maxLength int) (any, error) {
	switch val := v.(type) {
	case value.Int:
		return f.CreateIntParameter(name, int32(val))
	case value.Long:
		return f.CreateLongParameter(name, int64(val))
	case value.Bool:
		return f.CreateBoolParameter(name, bool(val))
	case value.String:
		return f.CreateStringParameter(name, string(val), maxLength)
	case value.Decimal:
		return f.CreateDecimalParameter(name, val)
	case value.DateTime:
		return f.CreateDateTimeParameter(name, val.Time())
	case value.GUID:
		return f.CreateGUIDParameter(name, val.UUID())
	case value.Binary:
		return f.CreateBinaryParameter(name, []byte(val), maxLength)
	case value.Null:
		return f.CreateNullParameter(name, val.Of)
	case nil:
		return f.CreateNullParameter(name, value.KindNull)
	default:
		return nil, fmt.Errorf("unsupported value type for SQL parameter: %T", v)
	}
}
