package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/stroiman/dataaccess/internal/config"
	"github.com/stroiman/dataaccess/internal/datatool"
)

// syncBuffer is a bytes.Buffer safe for a command writing in one goroutine
// while the test reads in another.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with an isolated in-memory config and
// colors disabled.
func runCLI(t *testing.T, ctx context.Context, stdout *syncBuffer, args ...string) cliRun {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	opts := &RootOptions{ConfigLoader: &config.Loader{Fs: afero.NewMemMapFs(), Dir: "/work"}}
	cmd := newRootCommand(opts)
	if stdout == nil {
		stdout = &syncBuffer{}
	}
	stderr := &syncBuffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.ExecuteContext(ctx)
	return cliRun{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

func run(t *testing.T, args ...string) cliRun {
	t.Helper()
	return runCLI(t, context.Background(), nil, args...)
}

func assertGolden(t *testing.T, name, actual string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(actual))
}

// createBlogDB creates a database with three users, two named Jo*, one of
// whom owns a blog, and returns its path.
func createBlogDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")

	ctx := context.Background()
	tool, err := datatool.Open(ctx, datatool.Config{Path: path})
	require.NoError(t, err)
	defer tool.Close()

	for _, stmt := range []string{
		`CREATE TABLE [User] ([ID] INTEGER PRIMARY KEY, [Name] TEXT)`,
		`CREATE TABLE [Blog] ([ID] INTEGER PRIMARY KEY, [UserID] INTEGER REFERENCES [User]([ID]))`,
		`INSERT INTO [User] VALUES (1, 'Joe'), (2, 'John'), (3, 'Bob')`,
		`INSERT INTO [Blog] VALUES (10, 1)`,
	} {
		_, err := tool.ExecuteNonQuery(ctx, stmt)
		require.NoError(t, err)
	}
	return path
}
