package datatool

import (
	"database/sql"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/querysql"
	"github.com/stroiman/dataaccess/internal/value"
)

var _ querysql.ParameterFactory = (*DataTool)(nil)

// SQLite has no native decimal or GUID type: decimals are bound as their
// canonical text and GUIDs as their 36-character string form.

// CreateStringParameter creates a text parameter. A positive maxLength is
// enforced in runes.
func (d *DataTool) CreateStringParameter(name, v string, maxLength int) (any, error) {
	if n := utf8.RuneCountInString(v); maxLength > 0 && n > maxLength {
		return nil, &ParameterTooLongError{
			Kind:          value.KindString,
			ParameterName: name,
			MaxLength:     maxLength,
			ActualLength:  n,
		}
	}
	return sql.Named(name, v), nil
}

func (d *DataTool) CreateIntParameter(name string, v int32) (any, error) {
	return sql.Named(name, int64(v)), nil
}

func (d *DataTool) CreateLongParameter(name string, v int64) (any, error) {
	return sql.Named(name, v), nil
}

func (d *DataTool) CreateBoolParameter(name string, v bool) (any, error) {
	return sql.Named(name, v), nil
}

func (d *DataTool) CreateDecimalParameter(name string, v value.Decimal) (any, error) {
	return sql.Named(name, v.String()), nil
}

func (d *DataTool) CreateDateTimeParameter(name string, v time.Time) (any, error) {
	return sql.Named(name, v), nil
}

func (d *DataTool) CreateGUIDParameter(name string, v uuid.UUID) (any, error) {
	return sql.Named(name, v.String()), nil
}

// CreateBinaryParameter creates a blob parameter. A positive maxLength is
// enforced in bytes.
func (d *DataTool) CreateBinaryParameter(name string, v []byte, maxLength int) (any, error) {
	if maxLength > 0 && len(v) > maxLength {
		return nil, &ParameterTooLongError{
			Kind:          value.KindBinary,
			ParameterName: name,
			MaxLength:     maxLength,
			ActualLength:  len(v),
		}
	}
	return sql.Named(name, v), nil
}

func (d *DataTool) CreateNullParameter(name string, _ value.Kind) (any, error) {
	return sql.Named(name, nil), nil
}

// CreateParameter infers the parameter type from v.
func (d *DataTool) CreateParameter(name string, v any) (any, error) {
	val, err := value.Of(v)
	if err != nil {
		return nil, err
	}
	return sql.Named(name, value.Native(val)), nil
}
