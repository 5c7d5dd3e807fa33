package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/entity-search/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, eris.New("sqlite: empty database path")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS people (
	id         TEXT PRIMARY KEY,
	full_name  TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS organizations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	doc        TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_people_company ON people(company);
CREATE INDEX IF NOT EXISTS idx_organizations_name ON organizations(name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListPeople(ctx context.Context) ([]model.Person, error) {
	return sqliteList[model.Person](ctx, s.db, `SELECT doc FROM people ORDER BY id`, "person")
}

func (s *SQLiteStore) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	return sqliteList[model.Organization](ctx, s.db, `SELECT doc FROM organizations ORDER BY id`, "organization")
}

func (s *SQLiteStore) UpsertPeople(ctx context.Context, people []model.Person) (int64, error) {
	return s.upsert(ctx,
		`INSERT INTO people (id, full_name, company, doc, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name, company = excluded.company,
		 doc = excluded.doc, updated_at = excluded.updated_at`,
		len(people),
		func(i int) ([]any, error) {
			p := people[i]
			if err := requireID(p.ID, "person"); err != nil {
				return nil, err
			}
			doc, err := json.Marshal(p)
			if err != nil {
				return nil, eris.Wrapf(err, "sqlite: marshal person %s", p.ID)
			}
			return []any{p.ID, p.FullName, p.Company, string(doc)}, nil
		},
	)
}

func (s *SQLiteStore) UpsertOrganizations(ctx context.Context, orgs []model.Organization) (int64, error) {
	return s.upsert(ctx,
		`INSERT INTO organizations (id, name, doc, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, doc = excluded.doc, updated_at = excluded.updated_at`,
		len(orgs),
		func(i int) ([]any, error) {
			o := orgs[i]
			if err := requireID(o.ID, "organization"); err != nil {
				return nil, err
			}
			doc, err := json.Marshal(o)
			if err != nil {
				return nil, eris.Wrapf(err, "sqlite: marshal organization %s", o.ID)
			}
			return []any{o.ID, o.Name, string(doc)}, nil
		},
	)
}

// upsert runs stmt once per record inside a single transaction. args
// returns the statement arguments minus the trailing updated_at.
func (s *SQLiteStore) upsert(ctx context.Context, stmt string, n int, args func(i int) ([]any, error)) (int64, error) {
	if n == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	prep, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer prep.Close() //nolint:errcheck

	now := time.Now().UTC()
	var written int64
	for i := 0; i < n; i++ {
		a, err := args(i)
		if err != nil {
			return 0, err
		}
		res, err := prep.ExecContext(ctx, append(a, now)...)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert %v", a[0])
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: rows affected")
		}
		written += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return written, nil
}

func sqliteList[T any](ctx context.Context, db *sql.DB, query, what string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list %s", what)
	}
	defer rows.Close() //nolint:errcheck

	var out []T
	for rows.Next() {
		v, err := scanDoc[T](rows, what)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite")
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "sqlite: list %s iterate", what)
}
