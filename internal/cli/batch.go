package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/albedo/internal/config"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/logging"
	"github.com/rshade/albedo/internal/scenario"
)

// BatchParams holds the flags of the batch command.
type BatchParams struct {
	File        string
	SortBy      string
	Order       string
	Limit       int
	Concurrency int
	Catalog     string
	Output      string
	Out         string
	Progress    bool
}

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	var params BatchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Estimate a portfolio of sites from a file",
		Long: `Estimates every site in a YAML or JSON site file and prints one row per site
with portfolio totals. Sites are estimated concurrently; results keep the file
order unless --sort-by is given.

Site file format:

  sites:
    - name: depot
      unit: ft2
      areas: {roof: 1200, garden: 0, ground: 400}
      selection: {roof: tiles, ground: canopy}`,
		Example: `  # Every site, cheapest net total first
  albedo batch --file sites.yaml --sort-by net

  # The five fastest paybacks as CSV
  albedo batch --file sites.yaml --sort-by payback --limit 5 --output csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBatch(cmd, params)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&params.File, "file", "f", "", "site file (YAML or JSON)")
	f.StringVar(&params.SortBy, "sort-by", "", "sort field, optionally field:order (fields: name, cost, net, subsidy, savings, co2, payback)")
	f.StringVar(&params.Order, "order", "", "sort order: asc or desc (overrides field:order)")
	f.IntVar(&params.Limit, "limit", 0, "show at most N sites after sorting (0 = all)")
	f.IntVar(&params.Concurrency, "concurrency", 0, "parallel estimates (0 = number of CPUs)")
	f.StringVar(&params.Catalog, "catalog", "", "catalog YAML file (default: built-in catalog)")
	f.StringVarP(&params.Output, "output", "o", "", "output format: table|json|ndjson|csv|markdown (default from config)")
	f.StringVar(&params.Out, "out", "", "write output to FILE instead of stdout")
	f.BoolVar(&params.Progress, "progress", false, "report progress on stderr")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// ValidateBatchFlags checks the batch flags and returns the sort field and
// order to apply; an empty field keeps file order.
//
//nolint:nonamedreturns // Named returns document the pair.
func ValidateBatchFlags(params BatchParams) (field, order string, err error) {
	if params.Limit < 0 {
		return "", "", fmt.Errorf("--limit must be >= 0, got %d", params.Limit)
	}
	if params.Concurrency < 0 {
		return "", "", fmt.Errorf("--concurrency must be >= 0, got %d", params.Concurrency)
	}
	if params.SortBy == "" {
		if params.Order != "" {
			return "", "", errors.New("--order requires --sort-by")
		}
		return "", "", nil
	}
	field, order, err = scenario.ParseSortExpression(params.SortBy)
	if err != nil {
		return "", "", err
	}
	if params.Order != "" {
		if params.Order != scenario.SortOrderAsc && params.Order != scenario.SortOrderDesc {
			return "", "", fmt.Errorf("%w: %q", scenario.ErrInvalidSortOrder, params.Order)
		}
		order = params.Order
	}
	return field, order, nil
}

// executeBatch runs the batch command.
func executeBatch(cmd *cobra.Command, params BatchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	audit := newAuditContext(ctx, "albedo batch", map[string]string{
		"file":        params.File,
		"sort_by":     params.SortBy,
		"order":       params.Order,
		"limit":       strconv.Itoa(params.Limit),
		"concurrency": strconv.Itoa(params.Concurrency),
		"catalog":     params.Catalog,
		"output":      params.Output,
	})

	field, order, err := ValidateBatchFlags(params)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	format, err := resolveFormat(params.Output, cfg)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	if format.IsBinary() {
		err = fmt.Errorf("%w: %s is not available for batch output", export.ErrUnsupportedFormat, format)
		audit.logFailure(ctx, err)
		return err
	}

	sites, err := scenario.Load(params.File)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("file", params.File).Msg("failed to load site file")
		audit.logFailure(ctx, err)
		return err
	}
	log.Debug().Ctx(ctx).Int("site_count", len(sites)).Msg("sites loaded")

	svc, err := newService(ctx, cfg, params.Catalog, audit)
	if err != nil {
		return err
	}

	opts := scenario.Options{Concurrency: params.Concurrency}
	if params.Progress {
		opts.OnProgress = progressPrinter(cmd.ErrOrStderr())
	}
	outcomes, err := scenario.Evaluate(ctx, svc, sites, opts)
	if err != nil {
		audit.logFailure(ctx, err)
		return fmt.Errorf("evaluating sites: %w", err)
	}

	if field != "" {
		outcomes, err = scenario.Sort(outcomes, field, order)
		if err != nil {
			audit.logFailure(ctx, err)
			return err
		}
	}
	outcomes = scenario.Limit(outcomes, params.Limit)
	summary := scenario.Summarize(outcomes)

	w, closeOut, err := openOutput(cmd, params.Out, format)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	runID := audit.traceID
	if runID == "" {
		runID = logging.NewID()
	}
	renderErr := export.RenderPortfolio(w, format, export.Portfolio{
		RunID:     runID,
		Outcomes:  outcomes,
		Summary:   summary,
		Currency:  cfg.Estimator.Currency,
		Precision: cfg.Output.Precision,
	})
	if closeErr := closeOut(); renderErr == nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		audit.logFailure(ctx, renderErr)
		return fmt.Errorf("rendering %s: %w", format, renderErr)
	}

	audit.logSuccess(ctx, summary.Sites, summary.NetTotal)
	log.Info().Ctx(ctx).Str("component", "cli").Str("operation", "batch").
		Int("sites", summary.Sites).
		Int("adjusted", summary.Adjusted).
		Float64("net_total", summary.NetTotal).
		Dur("duration_ms", time.Since(audit.start)).
		Msg("batch complete")

	return nil
}

// progressPrinter reports evaluation progress on one rewritten stderr line.
func progressPrinter(w io.Writer) scenario.ProgressCallback {
	return func(p scenario.Progress) {
		_, _ = fmt.Fprintf(w, "\rEstimated %d/%d sites (%.0f%%)", p.Processed, p.Total, p.Percent())
		if p.Processed == p.Total {
			_, _ = fmt.Fprintln(w)
		}
	}
}
