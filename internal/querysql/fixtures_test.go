package querysql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroiman/dataaccess/internal/testutil"
)

// Tables mirror a small blog schema: users own blogs, blogs own entries.
func newUserTable() *Table      { return NewTable("User", "ID", "Name") }
func newBlogTable() *Table      { return NewTable("Blog", "ID", "UserID") }
func newBlogEntryTable() *Table { return NewTable("BlogEntry", "ID", "BlogID", "Title") }
func newTestTable() *Table      { return NewTable("Test", "DateTimeField") }

// compileWith compiles q with a fresh recording factory.
func compileWith(t *testing.T, q Query) (string, []any) {
	t.Helper()
	sql, params, err := NewSQLCompiler(testutil.NewRecordingFactory()).Compile(q)
	require.NoError(t, err)
	return sql, params
}
