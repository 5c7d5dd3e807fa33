package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var peopleUpsert = UpsertConfig{
	Table:        "people",
	Columns:      []string{"id", "doc", "updated_at"},
	ConflictKeys: []string{"id"},
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(context.Background(), nil, peopleUpsert, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_InvalidConfig(t *testing.T) {
	rows := [][]any{{"p1", "{}"}}

	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{Table: "people", ConflictKeys: []string{"id"}}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")

	_, err = BulkUpsert(context.Background(), nil, UpsertConfig{Table: "people", Columns: []string{"id"}}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestBulkUpsert_Success(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_people"}, peopleUpsert.Columns).WillReturnResult(2)
	mock.ExpectExec("DELETE FROM").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO").WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{{"p1", "{}", nil}, {"p2", "{}", nil}}
	n, err := BulkUpsert(context.Background(), mock, peopleUpsert, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_BeginError(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := BulkUpsert(context.Background(), mock, peopleUpsert, [][]any{{"p1", "{}", nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpsert_CopyError(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_people"}, peopleUpsert.Columns).WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := BulkUpsert(context.Background(), mock, peopleUpsert, [][]any{{"p1", "{}", nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy into temp table for people")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeSQL(t *testing.T) {
	got := mergeSQL(peopleUpsert)
	assert.Equal(t,
		`INSERT INTO "people" ("id", "doc", "updated_at") SELECT "id", "doc", "updated_at" FROM "_tmp_upsert_people" `+
			`ON CONFLICT ("id") DO UPDATE SET "doc" = EXCLUDED."doc", "updated_at" = EXCLUDED."updated_at"`,
		got)

	keysOnly := UpsertConfig{Table: "app.tags", Columns: []string{"id"}, ConflictKeys: []string{"id"}}
	assert.Equal(t,
		`INSERT INTO "app"."tags" ("id") SELECT "id" FROM "_tmp_upsert_app_tags" ON CONFLICT ("id") DO NOTHING`,
		mergeSQL(keysOnly))
}

func TestDedupSQL(t *testing.T) {
	got := dedupSQL(`"_tmp"`, []string{"org_id", "name"})
	assert.Equal(t,
		`DELETE FROM "_tmp" a USING "_tmp" b WHERE a.ctid < b.ctid AND a."org_id" = b."org_id" AND a."name" = b."name"`,
		got)
}

func TestSanitizeTable(t *testing.T) {
	assert.Equal(t, `"people"`, sanitizeTable("people"))
	assert.Equal(t, `"search"."people"`, sanitizeTable("search.people"))
}

func TestUpdateColumns(t *testing.T) {
	assert.Equal(t, []string{"doc", "updated_at"}, peopleUpsert.updateColumns())

	explicit := peopleUpsert
	explicit.UpdateCols = []string{"doc"}
	assert.Equal(t, []string{"doc"}, explicit.updateColumns())
}
