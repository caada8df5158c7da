package cli

import (
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stroiman/dataaccess/internal/datatool"
	"github.com/stroiman/dataaccess/internal/querysql"
	"github.com/stroiman/dataaccess/internal/value"
)

// PreviewParameter is a parameter as shown by compile. Values are
// rendered to their display form: date-times as RFC 3339, GUIDs and
// decimals as strings, binary as 0x-prefixed hex.
type PreviewParameter struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

func (p PreviewParameter) String() string {
	if p.Value == nil {
		return fmt.Sprintf("@%s %s = NULL", p.Name, p.Kind)
	}
	return fmt.Sprintf("@%s %s = %v", p.Name, p.Kind, p.Value)
}

// previewFactory creates PreviewParameters. It applies the same length
// limits as the database adapter, so compile reports oversized values.
type previewFactory struct{}

var _ querysql.ParameterFactory = previewFactory{}

func preview(name string, kind value.Kind, v any) (any, error) {
	return PreviewParameter{Name: name, Kind: kind.String(), Value: v}, nil
}

func (previewFactory) CreateStringParameter(name, v string, maxLength int) (any, error) {
	if n := utf8.RuneCountInString(v); maxLength > 0 && n > maxLength {
		return nil, &datatool.ParameterTooLongError{Kind: value.KindString, ParameterName: name, MaxLength: maxLength, ActualLength: n}
	}
	return preview(name, value.KindString, v)
}

func (previewFactory) CreateIntParameter(name string, v int32) (any, error) {
	return preview(name, value.KindInt, v)
}

func (previewFactory) CreateLongParameter(name string, v int64) (any, error) {
	return preview(name, value.KindLong, v)
}

func (previewFactory) CreateBoolParameter(name string, v bool) (any, error) {
	return preview(name, value.KindBool, v)
}

func (previewFactory) CreateDecimalParameter(name string, v value.Decimal) (any, error) {
	return preview(name, value.KindDecimal, v.String())
}

func (previewFactory) CreateDateTimeParameter(name string, v time.Time) (any, error) {
	return preview(name, value.KindDateTime, v.Format(time.RFC3339Nano))
}

func (previewFactory) CreateGUIDParameter(name string, v uuid.UUID) (any, error) {
	return preview(name, value.KindGUID, v.String())
}

func (previewFactory) CreateBinaryParameter(name string, v []byte, maxLength int) (any, error) {
	if maxLength > 0 && len(v) > maxLength {
		return nil, &datatool.ParameterTooLongError{Kind: value.KindBinary, ParameterName: name, MaxLength: maxLength, ActualLength: len(v)}
	}
	return preview(name, value.KindBinary, "0x"+hex.EncodeToString(v))
}

func (previewFactory) CreateNullParameter(name string, kind value.Kind) (any, error) {
	return preview(name, kind, nil)
}

func (f previewFactory) CreateParameter(name string, v any) (any, error) {
	val, err := value.Of(v)
	if err != nil {
		return nil, err
	}
	switch val := val.(type) {
	case value.Int:
		return f.CreateIntParameter(name, int32(val))
	case value.Long:
		return f.CreateLongParameter(name, int64(val))
	case value.Bool:
		return f.CreateBoolParameter(name, bool(val))
	case value.String:
		return f.CreateStringParameter(name, string(val), 0)
	case value.Decimal:
		return f.CreateDecimalParameter(name, val)
	case value.DateTime:
		return f.CreateDateTimeParameter(name, val.Time())
	case value.GUID:
		return f.CreateGUIDParameter(name, val.UUID())
	case value.Binary:
		return f.CreateBinaryParameter(name, []byte(val), 0)
	default:
		return f.CreateNullParameter(name, value.KindNull)
	}
}
