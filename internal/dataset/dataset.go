// Package dataset loads the person and organization collections a search
// engine is built from: the embedded sample, JSON/YAML files, or a store.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/entity-search/internal/model"
)

//go:embed sample.yaml
var sampleYAML []byte

// Dataset is a pair of source collections.
type Dataset struct {
	People        []model.Person       `json:"people" yaml:"people"`
	Organizations []model.Organization `json:"organizations" yaml:"organizations"`
}

// Source lists stored records.
type Source interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	ListOrganizations(ctx context.Context) ([]model.Organization, error)
}

// Sink persists records, replacing existing ones with the same id.
type Sink interface {
	UpsertPeople(ctx context.Context, people []model.Person) (int64, error)
	UpsertOrganizations(ctx context.Context, orgs []model.Organization) (int64, error)
}

// Sample returns a fresh copy of the embedded sample dataset.
func Sample() (*Dataset, error) {
	ds, err := decodeYAML(sampleYAML)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: decode sample")
	}
	return ds, nil
}

// LoadFile reads a dataset from a .json, .yaml or .yml file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var ds *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		ds = &Dataset{}
		err = json.Unmarshal(data, ds)
	case ".yaml", ".yml":
		ds, err = decodeYAML(data)
	default:
		return nil, eris.Errorf("dataset: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}

	zap.L().Info("dataset: loaded file",
		zap.String("path", path),
		zap.Int("people", len(ds.People)),
		zap.Int("organizations", len(ds.Organizations)),
	)
	return ds, nil
}

// LoadStore reads both collections from src concurrently.
func LoadStore(ctx context.Context, src Source) (*Dataset, error) {
	ds := &Dataset{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		people, err := src.ListPeople(gctx)
		if err != nil {
			return eris.Wrap(err, "dataset: list people")
		}
		ds.People = people
		return nil
	})
	g.Go(func() error {
		orgs, err := src.ListOrganizations(gctx)
		if err != nil {
			return eris.Wrap(err, "dataset: list organizations")
		}
		ds.Organizations = orgs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("dataset: loaded store",
		zap.Int("people", len(ds.People)),
		zap.Int("organizations", len(ds.Organizations)),
	)
	return ds, nil
}

// ImportResult counts the rows written by Import.
type ImportResult struct {
	People        int64 `json:"people"`
	Organizations int64 `json:"organizations"`
}

// Import assigns ids to records that have none and upserts ds into dst.
// ds is modified in place so callers can see the assigned ids.
func Import(ctx context.Context, dst Sink, ds *Dataset) (*ImportResult, error) {
	if ds == nil {
		return &ImportResult{}, nil
	}
	for i := range ds.People {
		if strings.TrimSpace(ds.People[i].ID) == "" {
			ds.People[i].ID = uuid.New().String()
		}
	}
	for i := range ds.Organizations {
		if strings.TrimSpace(ds.Organizations[i].ID) == "" {
			ds.Organizations[i].ID = uuid.New().String()
		}
	}

	res := &ImportResult{}
	var err error
	if res.Organizations, err = dst.UpsertOrganizations(ctx, ds.Organizations); err != nil {
		return nil, eris.Wrap(err, "dataset: import organizations")
	}
	if res.People, err = dst.UpsertPeople(ctx, ds.People); err != nil {
		return nil, eris.Wrap(err, "dataset: import people")
	}

	zap.L().Info("dataset: imported",
		zap.Int64("people", res.People),
		zap.Int64("organizations", res.Organizations),
	)
	return res, nil
}

func decodeYAML(data []byte) (*Dataset, error) {
	ds := &Dataset{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
