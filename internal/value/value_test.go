package value

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Int(1)
	var _ Value = Long(1)
	var _ Value = Bool(true)
	var _ Value = String("x")
	var _ Value = DateTime(time.Time{})
	var _ Value = GUID(uuid.Nil)
	var _ Value = Binary{0x01}
	var _ Value = Null{}
	var _ Value = Decimal{}
}

func TestKind(t *testing.T) {
	tests := []struct {
		val  Value
		kind Kind
	}{
		{Int(1), KindInt},
		{Long(1), KindLong},
		{Bool(false), KindBool},
		{String(""), KindString},
		{DateTime(time.Now()), KindDateTime},
		{GUID(uuid.New()), KindGUID},
		{Binary(nil), KindBinary},
		{MustDecimal("1.5"), KindDecimal},
		{Null{Of: KindInt}, KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.val.Kind())
		})
	}
}

func TestParseKind(t *testing.T) {
	for k := KindNull; k <= KindBinary; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("float")
	assert.Error(t, err)
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestDecimal(t *testing.T) {
	d, err := NewDecimal("123.4500")
	require.NoError(t, err)
	assert.Equal(t, "123.4500", d.String())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"123.4500"`, string(data))

	_, err = NewDecimal("12,5")
	assert.Error(t, err)

	assert.Equal(t, "0", Decimal{}.String())
}

func TestDecimalApdIsCopy(t *testing.T) {
	d := MustDecimal("10")
	a := d.Apd()
	a.SetInt64(99)
	assert.Equal(t, "10", d.String())
}

func TestOf(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"int32", int32(7), Int(7)},
		{"int", 7, Long(7)},
		{"int64", int64(7), Long(7)},
		{"bool", true, Bool(true)},
		{"string", "hi", String("hi")},
		{"time", now, DateTime(now)},
		{"uuid", id, GUID(id)},
		{"bytes", []byte{1, 2}, Binary{1, 2}},
		{"value passthrough", String("x"), String("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Of(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	d, err := Of(apd.New(15, -1))
	require.NoError(t, err)
	assert.Equal(t, "1.5", d.(Decimal).String())

	_, err = Of(1.5)
	assert.Error(t, err, "floats are not bindable")
}

func TestNative(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, int32(3), Native(Int(3)))
	assert.Equal(t, int64(3), Native(Long(3)))
	assert.Equal(t, "x", Native(String("x")))
	assert.Equal(t, id.String(), Native(GUID(id)))
	assert.Equal(t, "2.50", Native(MustDecimal("2.50")))
	assert.Nil(t, Native(Null{Of: KindString}))
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, Null{Of: KindInt}, IntPtr(nil))
	assert.Equal(t, Null{Of: KindLong}, LongPtr(nil))
	assert.Equal(t, Null{Of: KindString}, StringPtr(nil))
	assert.Equal(t, Null{Of: KindDateTime}, DateTimePtr(nil))

	n := int32(5)
	assert.Equal(t, Int(5), IntPtr(&n))
	s := "a"
	assert.Equal(t, String("a"), StringPtr(&s))
}
