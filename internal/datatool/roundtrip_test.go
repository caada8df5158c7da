package datatool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroiman/dataaccess/internal/querysql"
)

type entity struct {
	Name   string
	Date   time.Time
	SomeID int32
}

func TestRoundTrip_EntityInsertAndSelect(t *testing.T) {
	d := createTestTool(t)
	ctx := context.Background()

	table := querysql.NewEntityTable[entity]("Entity")
	table.MapString("Name", 50, func(e entity) string { return e.Name })
	table.MapDateTime("Date", func(e entity) time.Time { return e.Date })
	table.MapInt("SomeID", func(e entity) int32 { return e.SomeID })

	date := time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)
	n, err := d.Execute(ctx, table.Insert(entity{Name: "name", Date: date, SomeID: 42}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	q := table.SelectWhere(table.Field("SomeID").EqualTo(querysql.IntConstant(42)))
	rec, err := firstRecord(ctx, d, q)
	require.NoError(t, err)

	name, err := rec.GetString("Name")
	require.NoError(t, err)
	assert.Equal(t, "name", name)

	got, err := Get[time.Time](rec, "Date")
	require.NoError(t, err)
	assert.True(t, date.Equal(got), "got %v", got)
}

func TestRoundTrip_LeftJoinProjection(t *testing.T) {
	d := createTestTool(t)
	ctx := context.Background()
	seedUsers(t, d, "ann", "bob")
	_, err := d.ExecuteNonQuery(ctx, "insert into [Blog] (ID, UserID) values (10, 1)")
	require.NoError(t, err)

	users := userTable()
	blogs := blogTable()
	join := users.LeftJoin(blogs).On(users.Field("ID").EqualTo(blogs.Field("UserID")))
	q := querysql.NewSelectQuery().AddTable(join).AddSelectFields(join)
	q.OrderBy(users.Field("ID"))

	reader, err := d.ExecuteQuery(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, []string{"User_ID", "User_Name", "Blog_ID", "Blog_UserID"}, reader.Columns())
	require.Equal(t, 2, reader.Len())

	first := reader.Records()[0]
	blogID, err := GetNullable[int64](first, "Blog_ID")
	require.NoError(t, err)
	require.NotNil(t, blogID)
	assert.Equal(t, int64(10), *blogID)

	second := reader.Records()[1]
	blogID, err = GetNullable[int64](second, "Blog_ID")
	require.NoError(t, err)
	assert.Nil(t, blogID, "bob has no blog")
}

func TestRoundTrip_OrAndLike(t *testing.T) {
	d := createTestTool(t)
	ctx := context.Background()
	seedUsers(t, d, "ann", "andy", "bob")

	users := userTable()
	q := users.SelectWhere(querysql.Or(
		users.Field("Name").StartsWith("and"),
		users.Field("ID").EqualTo(querysql.LongConstant(3)),
	))
	q.OrderBy(users.Field("ID"))

	reader, err := d.ExecuteQuery(ctx, q)
	require.NoError(t, err)

	var names []string
	for reader.Next() {
		name, err := reader.Record().GetString("Name")
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"andy", "bob"}, names)
}

func firstRecord(ctx context.Context, d *DataTool, q querysql.Query) (Record, error) {
	sqlText, params, err := d.Compile(q)
	if err != nil {
		return nil, err
	}
	return d.ExecuteReaderSingleRow(ctx, sqlText, params...)
}

func TestRoundTrip_SelectStarJoinResolvesFirstColumn(t *testing.T) {
	d := createTestTool(t)
	ctx := context.Background()
	seedUsers(t, d, "alice", "bob")
	_, err := d.ExecuteNonQuery(ctx, "insert into [Blog] (ID, UserID) values (99, 1)")
	require.NoError(t, err)

	users := userTable()
	blogs := blogTable()
	join := users.LeftJoin(blogs).On(users.Field("ID").EqualTo(blogs.Field("UserID")))
	q := querysql.NewSelectQuery().AddTable(join)
	q.OrderBy(users.Field("ID"))

	reader, err := d.ExecuteQuery(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "ID", "UserID"}, reader.Columns())
	require.Equal(t, 2, reader.Len())

	id, err := reader.Records()[0].GetLong("ID")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// bob has no blog, so the second ID column is NULL
	id, err = reader.Records()[1].GetLong("ID")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	assert.Equal(t, [][]any{
		{int64(1), "alice", int64(99), int64(1)},
		{int64(2), "bob", nil, nil},
	}, reader.Values())
}
