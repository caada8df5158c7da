package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroiman/dataaccess/internal/testutil"
)

func TestWherePartSealed(t *testing.T) {
	var _ WherePart = &FieldReference{}
	var _ WherePart = &Constant{}
	var _ WherePart = &EqualsClause{}
	var _ WherePart = &LessThanClause{}
	var _ WherePart = &LikeClause{}
	var _ WherePart = &StartsWithClause{}
	var _ WherePart = &IsNullClause{}
	var _ WherePart = &FullTextClause{}
	var _ WherePart = &OperatorClause{}
}

// renderPart renders p against a context where every table resolves to t1.
func renderPart(t *testing.T, p WherePart) (string, []any) {
	t.Helper()
	ctx := newBuildContext(testutil.NewRecordingFactory(), func(*Table) (string, error) { return "t1", nil })
	require.NoError(t, p.render(ctx))
	return ctx.result()
}

func TestFullTextClause_Active(t *testing.T) {
	field := NewTable("T", "F").Field("F")

	tests := []struct {
		text   string
		active bool
	}{
		{"", false},
		{"*", false},
		{`"*"`, false},
		{"Peter", true},
		{"**", true},
		{" ", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.active, FullText(tt.text, field).Active())
		})
	}
}

func TestFullTextClause_InactiveRendersNothing(t *testing.T) {
	sql, params := renderPart(t, FullText("*", NewTable("T").Field("F")))

	assert.Empty(t, sql)
	assert.Empty(t, params)
}

func TestOperatorClause_ZeroActiveChildren(t *testing.T) {
	field := NewTable("T").Field("F")

	for _, c := range []*OperatorClause{
		And(),
		Or(),
		And(FullText("", field)),
		Or(FullText("*", field), And()),
	} {
		assert.False(t, c.Active())
		sql, params := renderPart(t, c)
		assert.Empty(t, sql)
		assert.Empty(t, params)
	}
}

func TestOperatorClause_SingleActiveChildIsBare(t *testing.T) {
	field := NewTable("T").Field("F")

	sql, params := renderPart(t, And(FullText("*", field), field.EqualTo(IntConstant(3))))

	assert.Equal(t, "t1.[F]=@p1", sql)
	assert.Len(t, params, 1)
}

func TestOperatorClause_MultipleChildrenParenthesized(t *testing.T) {
	field := NewTable("T").Field("F")

	sql, params := renderPart(t, Or(field.IsNull(), FullText("", field), field.EqualTo(BoolConstant(true))))

	assert.Equal(t, "(t1.[F] IS NULL OR t1.[F]=@p1)", sql)
	assert.Len(t, params, 1)
}

func TestOperatorClause_IgnoresNilParts(t *testing.T) {
	field := NewTable("T").Field("F")
	c := And(nil, field.IsNull(), nil)
	c.AddPart(nil)

	assert.Equal(t, 1, c.Count())
	assert.False(t, c.Empty())
	assert.Len(t, c.Parts(), 1)
	assert.Equal(t, OpAnd, c.Operator())
	assert.True(t, And().Empty())
}

func TestOperatorClause_OperatorIsUppercased(t *testing.T) {
	field := NewTable("T").Field("F")

	sql, _ := renderPart(t, NewOperatorClause("or", field.IsNull(), field.IsNull()))

	assert.Equal(t, "(t1.[F] IS NULL OR t1.[F] IS NULL)", sql)
}

func TestLikeAndStartsWith(t *testing.T) {
	field := NewTable("T").Field("Name")

	for _, p := range []WherePart{field.Like("Pe"), field.StartsWith("Pe")} {
		sql, params := renderPart(t, p)
		assert.Equal(t, "t1.[Name] LIKE @p1", sql)
		assert.Equal(t, []any{"Pe%"}, testutil.Values(params))
	}
}

func TestInfixClauses(t *testing.T) {
	table := NewTable("T")
	a, b := table.Field("A"), table.Field("B")

	sql, _ := renderPart(t, a.EqualTo(b))
	assert.Equal(t, "t1.[A]=t1.[B]", sql)

	sql, _ = renderPart(t, a.LessThan(b))
	assert.Equal(t, "t1.[A] < t1.[B]", sql)

	sql, _ = renderPart(t, a.IsNull())
	assert.Equal(t, "t1.[A] IS NULL", sql)
}

func TestActiveIsPure(t *testing.T) {
	field := NewTable("T").Field("F")
	c := And(field.EqualTo(IntConstant(1)), FullText("x", field))

	for i := 0; i < 3; i++ {
		assert.True(t, c.Active())
	}
	_, params := renderPart(t, c)
	assert.Equal(t, []string{"p1", "p2"}, testutil.Names(params))
}
