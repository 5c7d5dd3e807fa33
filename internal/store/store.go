// Package store persists person and organization records as JSON documents
// keyed by id.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/entity-search/internal/model"
)

// Store defines the persistence interface for searchable records.
type Store interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)

	// Upserts replace records with the same id and return the number of
	// rows written.
	UpsertPeople(ctx context.Context, people []model.Person) (int64, error)
	UpsertOrganizations(ctx context.Context, orgs []model.Organization) (int64, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the store for driver ("sqlite" or "postgres").
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL, nil)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanDoc[T any](row scannable, what string) (T, error) {
	var (
		v   T
		doc []byte
	)
	if err := row.Scan(&doc); err != nil {
		return v, eris.Wrapf(err, "scan %s", what)
	}
	if err := json.Unmarshal(doc, &v); err != nil {
		return v, eris.Wrapf(err, "unmarshal %s", what)
	}
	return v, nil
}

func requireID(id, what string) error {
	if id == "" {
		return eris.Errorf("store: %s without id", what)
	}
	return nil
}
