package datatool

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroiman/dataaccess/internal/querysql"
	"github.com/stroiman/dataaccess/internal/value"
)

func TestParameterFactory_NamedArgs(t *testing.T) {
	d := createTestTool(t)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name   string
		create func() (any, error)
		want   sql.NamedArg
	}{
		{"string", func() (any, error) { return d.CreateStringParameter("p1", "abc", 3) }, sql.Named("p1", "abc")},
		{"int", func() (any, error) { return d.CreateIntParameter("p1", 5) }, sql.Named("p1", int64(5))},
		{"long", func() (any, error) { return d.CreateLongParameter("p1", 6) }, sql.Named("p1", int64(6))},
		{"bool", func() (any, error) { return d.CreateBoolParameter("p1", true) }, sql.Named("p1", true)},
		{"decimal", func() (any, error) { return d.CreateDecimalParameter("p1", value.MustDecimal("1.10")) }, sql.Named("p1", "1.10")},
		{"datetime", func() (any, error) { return d.CreateDateTimeParameter("p1", when) }, sql.Named("p1", when)},
		{"guid", func() (any, error) { return d.CreateGUIDParameter("p1", id) }, sql.Named("p1", id.String())},
		{"binary", func() (any, error) { return d.CreateBinaryParameter("p1", []byte{1}, 0) }, sql.Named("p1", []byte{1})},
		{"null", func() (any, error) { return d.CreateNullParameter("p1", value.KindInt) }, sql.Named("p1", nil)},
		{"generic", func() (any, error) { return d.CreateParameter("p1", "x") }, sql.Named("p1", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.create()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParameterFactory_StringTooLong(t *testing.T) {
	d := createTestTool(t)

	_, err := d.CreateStringParameter("p2", "h\u00e9llo", 4)

	var tooLong *ParameterTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, ParameterTooLongError{
		Kind:          value.KindString,
		ParameterName: "p2",
		MaxLength:     4,
		ActualLength:  5,
	}, *tooLong)
	assert.ErrorIs(t, err, ErrParameterTooLong)
	assert.True(t, IsParameterTooLong(err))
}

func TestParameterFactory_BinaryTooLong(t *testing.T) {
	d := createTestTool(t)

	_, err := d.CreateBinaryParameter("p1", make([]byte, 9), 8)

	var tooLong *ParameterTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, value.KindBinary, tooLong.Kind)
	assert.Equal(t, 9, tooLong.ActualLength)
}

func TestParameterFactory_GenericRejectsUnsupported(t *testing.T) {
	d := createTestTool(t)

	_, err := d.CreateParameter("p1", 1.5)
	assert.Error(t, err)
}

func TestExecute_TooLongPropagatesUnchanged(t *testing.T) {
	d := createTestTool(t)
	q := querysql.NewInsertQuery("Entity").SetBounded("Name", value.String(strings.Repeat("x", 11)), 10)

	_, err := d.Execute(context.Background(), q)

	var tooLong *ParameterTooLongError
	require.True(t, errors.As(err, &tooLong))
	assert.Equal(t, "p1", tooLong.ParameterName)
	var execErr *ExecError
	assert.False(t, errors.As(err, &execErr), "factory errors are not wrapped as exec errors")

	count, err := d.ExecuteScalar(context.Background(), "select count(*) from [Entity]")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count, "nothing is executed after a compile failure")
}
