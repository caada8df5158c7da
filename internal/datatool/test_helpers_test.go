package datatool

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stroiman/dataaccess/internal/querysql"
)

const testSchema = `
CREATE TABLE [User] (ID INTEGER PRIMARY KEY, Name TEXT);
CREATE TABLE [Blog] (ID INTEGER PRIMARY KEY, UserID INTEGER NOT NULL REFERENCES [User](ID));
CREATE TABLE [Entity] (Name TEXT, Date DATETIME, SomeID INTEGER);
`

// createTestTool opens a data tool on a fresh database with the test schema.
func createTestTool(t *testing.T) *DataTool {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := Open(context.Background(), Config{
		Path:   path,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if _, err := d.ExecuteNonQuery(context.Background(), testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return d
}

// seedUsers inserts users with IDs 1..len(names).
func seedUsers(t *testing.T, d *DataTool, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := d.ExecuteNonQuery(context.Background(),
			"insert into [User] (ID, Name) values (@id, @name)",
			sqlNamed("id", int64(i+1)), sqlNamed("name", name))
		if err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
}

func userTable() *querysql.Table { return querysql.NewTable("User", "ID", "Name") }
func blogTable() *querysql.Table { return querysql.NewTable("Blog", "ID", "UserID") }
