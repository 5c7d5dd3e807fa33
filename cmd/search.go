package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/entity-search/internal/config"
	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/report"
)

// searchOptions mirrors the search command's flags.
type searchOptions struct {
	entity     string
	location   string
	role       string
	company    string
	industry   string
	tags       []string
	stage      string
	minFunding float64
	hasMinFund bool
	limit      int
	hasLimit   bool
	format     string
	output     string
}

var searchOpts searchOptions

var searchCmd = &cobra.Command{
	Use:   "search <text...>",
	Short: "Rank people and organizations against a query",
	Example: `  entity-search search "software engineer in SF"
  entity-search search cto --entity both --format json
  entity-search search fintech --entity organization --stage "series a" --min-funding 1000000`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("search"); err != nil {
			return err
		}

		opts := searchOpts
		opts.hasMinFund = cmd.Flags().Changed("min-funding")
		opts.hasLimit = cmd.Flags().Changed("limit")

		out := cmd.OutOrStdout()
		if opts.output != "" {
			f, err := os.Create(opts.output)
			if err != nil {
				return eris.Wrap(err, "search: create output file")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		return runSearch(cmd.Context(), cfg, strings.Join(args, " "), opts, out)
	},
}

// buildQuery turns command-line input into a SearchQuery.
func buildQuery(c *config.Config, text string, opts searchOptions) model.SearchQuery {
	q := model.SearchQuery{
		Text:       text,
		EntityType: model.EntityType(strings.ToLower(opts.entity)),
		Limit:      c.Search.Limit,
		Filters: model.Filters{
			Location:     opts.location,
			Role:         opts.role,
			Company:      opts.company,
			Industry:     opts.industry,
			Tags:         opts.tags,
			FundingStage: opts.stage,
		},
	}
	if opts.hasMinFund {
		v := opts.minFunding
		q.Filters.MinFunding = &v
	}
	if opts.hasLimit {
		q.Limit = opts.limit
	}
	return q
}

func runSearch(ctx context.Context, c *config.Config, text string, opts searchOptions, out io.Writer) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && opts.output == "" {
		return eris.New("search: xlsx output requires --output")
	}

	engine, err := buildEngine(ctx, c)
	if err != nil {
		return err
	}

	q := buildQuery(c, text, opts)
	start := time.Now()
	results, err := engine.Search(&q)
	if err != nil {
		return eris.Wrap(err, "search")
	}
	zap.L().Debug("search complete",
		zap.String("text", q.Text),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return report.Write(out, format, results)
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchOpts.entity, "entity", "", "entity type: person, organization or both (default person)")
	f.StringVar(&searchOpts.location, "location", "", "location filter (city, state or country)")
	f.StringVar(&searchOpts.role, "role", "", "role filter matched against titles")
	f.StringVar(&searchOpts.company, "company", "", "company filter")
	f.StringVar(&searchOpts.industry, "industry", "", "industry filter")
	f.StringSliceVar(&searchOpts.tags, "tags", nil, "comma-separated tag filter")
	f.StringVar(&searchOpts.stage, "stage", "", "funding stage filter, e.g. \"series a\"")
	f.Float64Var(&searchOpts.minFunding, "min-funding", 0, "minimum total funding raised")
	f.IntVar(&searchOpts.limit, "limit", 0, "maximum results, 0 for unlimited (default from config)")
	f.StringVar(&searchOpts.format, "format", "table", "output format: table, json, csv or xlsx")
	f.StringVarP(&searchOpts.output, "output", "o", "", "write results to a file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}
