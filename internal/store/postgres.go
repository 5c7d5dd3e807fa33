package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/entity-search/internal/db"
	"github.com/sells-group/entity-search/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 4
	pgxCfg.MinConns = 1
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			pgxCfg.MaxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			pgxCfg.MinConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS people (
	id         TEXT PRIMARY KEY,
	full_name  TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS organizations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_people_company ON people(company);
CREATE INDEX IF NOT EXISTS idx_organizations_name ON organizations(name);
`

var (
	peopleUpsert = db.UpsertConfig{
		Table:        "people",
		Columns:      []string{"id", "full_name", "company", "doc", "updated_at"},
		ConflictKeys: []string{"id"},
	}
	organizationsUpsert = db.UpsertConfig{
		Table:        "organizations",
		Columns:      []string{"id", "name", "doc", "updated_at"},
		ConflictKeys: []string{"id"},
	}
)

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ListPeople(ctx context.Context) ([]model.Person, error) {
	return postgresList[model.Person](ctx, s.pool, `SELECT doc FROM people ORDER BY id`, "person")
}

func (s *PostgresStore) ListOrganizations(ctx context.Context) ([]model.Organization, error) {
	return postgresList[model.Organization](ctx, s.pool, `SELECT doc FROM organizations ORDER BY id`, "organization")
}

func (s *PostgresStore) UpsertPeople(ctx context.Context, people []model.Person) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(people))
	for _, p := range people {
		if err := requireID(p.ID, "person"); err != nil {
			return 0, err
		}
		doc, err := json.Marshal(p)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal person %s", p.ID)
		}
		rows = append(rows, []any{p.ID, p.FullName, p.Company, doc, now})
	}
	n, err := db.BulkUpsert(ctx, s.pool, peopleUpsert, rows)
	return n, eris.Wrap(err, "postgres: upsert people")
}

func (s *PostgresStore) UpsertOrganizations(ctx context.Context, orgs []model.Organization) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(orgs))
	for _, o := range orgs {
		if err := requireID(o.ID, "organization"); err != nil {
			return 0, err
		}
		doc, err := json.Marshal(o)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal organization %s", o.ID)
		}
		rows = append(rows, []any{o.ID, o.Name, doc, now})
	}
	n, err := db.BulkUpsert(ctx, s.pool, organizationsUpsert, rows)
	return n, eris.Wrap(err, "postgres: upsert organizations")
}

func postgresList[T any](ctx context.Context, pool db.Pool, query, what string) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list %s", what)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scanDoc[T](rows, what)
		if err != nil {
			return nil, eris.Wrap(err, "postgres")
		}
		out = append(out, v)
	}
	return out, eris.Wrapf(rows.Err(), "postgres: list %s iterate", what)
}
