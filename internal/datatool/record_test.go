package datatool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_GetObject(t *testing.T) {
	rec := Record{"ID": int64(1), "Name": nil}

	v, err := rec.GetObject("ID")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = rec.GetObject("Name")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = rec.GetObject("Missing")
	var unknown *UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

func TestRecord_GetString(t *testing.T) {
	rec := Record{"A": "x", "B": []byte("y"), "C": nil, "D": int64(1)}

	for field, want := range map[string]string{"A": "x", "B": "y", "C": ""} {
		got, err := rec.GetString(field)
		require.NoError(t, err)
		assert.Equal(t, want, got, field)
	}

	_, err := rec.GetString("D")
	var typeErr *FieldTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestRecord_GetLong(t *testing.T) {
	rec := Record{"ID": int64(42), "Missing": nil}

	n, err := rec.GetLong("ID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = rec.GetLong("Missing")
	var nullErr *UnexpectedNullError
	require.ErrorAs(t, err, &nullErr)
	assert.Equal(t, "Missing", nullErr.Field)
	assert.ErrorIs(t, err, ErrUnexpectedNull)
	assert.Contains(t, err.Error(), "NULL which was not allowed")
}

func TestGet_Conversions(t *testing.T) {
	rec := Record{"N": int64(7), "Flag": int64(1), "Text": []byte("t"), "S": "s"}

	n32, err := Get[int32](rec, "N")
	require.NoError(t, err)
	assert.Equal(t, int32(7), n32)

	flag, err := Get[bool](rec, "Flag")
	require.NoError(t, err)
	assert.True(t, flag)

	text, err := Get[string](rec, "Text")
	require.NoError(t, err)
	assert.Equal(t, "t", text)

	_, err = Get[int64](rec, "S")
	var typeErr *FieldTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestGetNullable(t *testing.T) {
	rec := Record{"N": int64(7), "Null": nil}

	n, err := GetNullable[int64](rec, "N")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(7), *n)

	null, err := GetNullable[int64](rec, "Null")
	require.NoError(t, err)
	assert.Nil(t, null)

	_, err = GetNullable[int64](rec, "Missing")
	assert.Error(t, err)
}
