package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/entity-search/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS people`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListPeople(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM people ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"id":"p1","full_name":"Ada Park","title":"CTO","location":{"city":"Austin"},"fact_count":3}`)).
			AddRow([]byte(`{"id":"p2","full_name":"Ben Ode","location":{},"fact_count":0}`)))

	people, err := s.ListPeople(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Ada Park", people[0].FullName)
	assert.Equal(t, "Austin", people[0].Location.City)
	assert.Equal(t, 3, people[0].FactCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListOrganizations_BadDoc(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM organizations`).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow([]byte(`{not json`)))

	_, err := s.ListOrganizations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal organization")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListPeople_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM people`).WillReturnError(errors.New("connection reset"))

	_, err := s.ListPeople(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: list person")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertPeople(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_people"}, peopleUpsert.Columns).WillReturnResult(2)
	mock.ExpectExec(`DELETE FROM`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO "people"`).WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	n, err := s.UpsertPeople(context.Background(), []model.Person{
		{ID: "p1", FullName: "Ada Park"},
		{ID: "p2", FullName: "Ben Ode"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertOrganizations(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_organizations"}, organizationsUpsert.Columns).WillReturnResult(1)
	mock.ExpectExec(`DELETE FROM`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO "organizations"`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := s.UpsertOrganizations(context.Background(), []model.Organization{{ID: "o1", Name: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertRequiresID(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	_, err := s.UpsertOrganizations(context.Background(), []model.Organization{{Name: "Acme"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization without id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpsertEmpty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	n, err := s.UpsertPeople(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Close(t *testing.T) {
	closed := false
	s := &PostgresStore{closeFn: func() { closed = true }}
	require.NoError(t, s.Close())
	assert.True(t, closed)
}
