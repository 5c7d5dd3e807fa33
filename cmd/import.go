package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/entity-search/internal/config"
	"github.com/sells-group/entity-search/internal/dataset"
)

var importFilePath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON or YAML dataset into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("import"); err != nil {
			return err
		}

		res, err := runImport(cmd.Context(), cfg, importFilePath)
		if err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.Int64("people", res.People),
			zap.Int64("organizations", res.Organizations),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

func runImport(ctx context.Context, c *config.Config, path string) (*dataset.ImportResult, error) {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, c)
	if err != nil {
		return nil, eris.Wrap(err, "import: open store")
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return nil, eris.Wrap(err, "import: migrate")
	}

	return dataset.Import(ctx, st, ds)
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to a .json, .yaml or .yml dataset (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
