package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/entity-search/internal/config"
	"github.com/sells-group/entity-search/internal/dataset"
	"github.com/sells-group/entity-search/internal/resilience"
	"github.com/sells-group/entity-search/internal/search"
	"github.com/sells-group/entity-search/internal/store"
)

// loadDataset reads records from the configured source.
func loadDataset(ctx context.Context, c *config.Config) (*dataset.Dataset, error) {
	switch c.Dataset.Source {
	case config.SourceSample, "":
		return dataset.Sample()
	case config.SourceFile:
		return dataset.LoadFile(c.Dataset.Path)
	case config.SourceStore:
		st, err := openStore(ctx, c)
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
		return resilience.Do(ctx, retryConfig(c, "load store"), func(ctx context.Context) (*dataset.Dataset, error) {
			return dataset.LoadStore(ctx, st)
		})
	}
	return nil, eris.Errorf("unknown dataset source %q", c.Dataset.Source)
}

// openStore connects to the configured store, retrying transient failures.
func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	return resilience.Do(ctx, retryConfig(c, "open store"), func(ctx context.Context) (store.Store, error) {
		return store.Open(ctx, c.Store.Driver, c.Store.DatabaseURL)
	})
}

func retryConfig(c *config.Config, operation string) resilience.RetryConfig {
	rc := resilience.WithAttempts(c.Store.RetryAttempts)
	rc.OnRetry = resilience.RetryLogger(operation)
	return rc
}

// buildEngine loads the configured dataset and indexes it.
func buildEngine(ctx context.Context, c *config.Config) (*search.Engine, error) {
	ds, err := loadDataset(ctx, c)
	if err != nil {
		return nil, eris.Wrap(err, "load dataset")
	}

	engine := search.NewEngine(ds.People, ds.Organizations)
	st := engine.Stats()
	zap.L().Info("engine ready",
		zap.String("source", c.Dataset.Source),
		zap.Int("people", st.People),
		zap.Int("organizations", st.Organizations),
		zap.Int("executives", st.Executives),
	)
	return engine, nil
}
