package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rshade/albedo/internal/catalog"
	"github.com/rshade/albedo/internal/config"
	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/export"
	"github.com/rshade/albedo/internal/logging"
	"github.com/rshade/albedo/internal/tui"
)

// Material flag names.
const (
	flagRoofMaterial   = "roof-material"
	flagGardenMaterial = "garden-material"
	flagGroundMaterial = "ground-material"
)

// EstimateParams holds the flags of the estimate command.
type EstimateParams struct {
	Roof   float64
	Garden float64
	Ground float64
	Unit   string

	RoofMaterial   string
	GardenMaterial string
	GroundMaterial string

	Catalog     string
	Output      string
	Out         string
	Title       string
	Interactive bool
}

// NewEstimateCmd creates the estimate command.
func NewEstimateCmd() *cobra.Command {
	defaults := engine.DefaultRequest()
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate retrofit cost, subsidies, payback and cooling impact",
		Long: `Estimates one building. Each surface (roof, garden, ground) gets an area and
a material option from the catalog; the quote shows cost per surface, the
green and solar subsidies, the net total, yearly savings and break-even time.

Negative or non-numeric areas are treated as 0 and unknown material ids as
the surface's "none" option; corrections are listed under the quote.`,
		Example: `  # Default building: 1000 sq.ft roof with reflective paint
  albedo estimate

  # Square metres with a bio-wall
  albedo estimate --unit m2 --roof 90 --garden 20 --garden-material hydro

  # Solar canopy over parking, as JSON
  albedo estimate --ground 600 --parking-material canopy --output json

  # PDF quote
  albedo estimate --output pdf --out quote.pdf

  # Interactive calculator
  albedo estimate --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, params)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&params.Roof, "roof", defaults.Areas.Roof, "roof area")
	f.Float64Var(&params.Garden, "garden", defaults.Areas.Garden, "garden or facade area")
	f.Float64Var(&params.Ground, "ground", defaults.Areas.Ground, "ground or parking area")
	f.StringVar(&params.Unit, "unit", "", "area unit: ft2 or m2 (default from config)")
	f.StringVar(&params.RoofMaterial, flagRoofMaterial, string(defaults.Selection.Roof), "roof option id")
	f.StringVar(&params.GardenMaterial, flagGardenMaterial, string(defaults.Selection.Garden), "garden option id")
	f.StringVar(&params.GroundMaterial, flagGroundMaterial, string(defaults.Selection.Ground),
		"ground option id (alias --parking-material)")
	f.StringVar(&params.Catalog, "catalog", "", "catalog YAML file (default: built-in catalog)")
	f.StringVarP(&params.Output, "output", "o", "",
		"output format: "+formatList()+" (default from config)")
	f.StringVar(&params.Out, "out", "", "write output to FILE instead of stdout")
	f.StringVar(&params.Title, "title", "", "quote title")
	f.BoolVarP(&params.Interactive, "interactive", "i", false, "open the interactive calculator first")
	f.SetNormalizeFunc(materialFlagAliases)

	return cmd
}

// materialFlagAliases maps the surface aliases used on quotes onto the flag
// names.
func materialFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "parking-material":
		name = flagGroundMaterial
	case "facade-material":
		name = flagGardenMaterial
	case "parking":
		name = "ground"
	case "facade":
		name = "garden"
	}
	return pflag.NormalizedName(name)
}

func formatList() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// ValidateEstimateFlags checks flag values that cannot be corrected by the
// engine. Areas and material ids are not checked here: the engine clamps
// and falls back, and the quote reports it.
func ValidateEstimateFlags(params EstimateParams) error {
	var errs []error
	if params.Unit != "" {
		if _, err := engine.ParseUnit(params.Unit); err != nil {
			errs = append(errs, fmt.Errorf("--unit: %w", err))
		}
	}
	if params.Output != "" {
		if _, err := export.ParseFormat(params.Output); err != nil {
			errs = append(errs, fmt.Errorf("--output: %w", err))
		}
	}
	return errors.Join(errs...)
}

// BuildEstimateRequest turns flags into an engine request, taking the unit
// from cfg when --unit is empty.
func BuildEstimateRequest(params EstimateParams, cfg *config.Config) (engine.Request, error) {
	unit := cfg.Estimator.UnitOrDefault()
	if params.Unit != "" {
		u, err := engine.ParseUnit(params.Unit)
		if err != nil {
			return engine.Request{}, err
		}
		unit = u
	}
	return engine.Request{
		Areas: engine.AreaInputs{Roof: params.Roof, Garden: params.Garden, Ground: params.Ground},
		Unit:  unit,
		Selection: engine.Selection{
			Roof:   parseOptionID(params.RoofMaterial),
			Garden: parseOptionID(params.GardenMaterial),
			Ground: parseOptionID(params.GroundMaterial),
		},
	}, nil
}

func parseOptionID(s string) catalog.OptionID {
	return catalog.OptionID(strings.ToLower(strings.TrimSpace(s)))
}

// executeEstimate runs the estimate command.
func executeEstimate(cmd *cobra.Command, params EstimateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	log.Debug().Ctx(ctx).Str("component", "cli").Str("operation", "estimate").
		Float64("roof", params.Roof).Float64("garden", params.Garden).Float64("ground", params.Ground).
		Str("unit", params.Unit).Bool("interactive", params.Interactive).
		Msg("starting estimate")

	audit := newAuditContext(ctx, "albedo estimate", map[string]string{
		"roof":          strconv.FormatFloat(params.Roof, 'f', -1, 64),
		"garden":        strconv.FormatFloat(params.Garden, 'f', -1, 64),
		"ground":        strconv.FormatFloat(params.Ground, 'f', -1, 64),
		"unit":          params.Unit,
		"roof_option":   params.RoofMaterial,
		"garden_option": params.GardenMaterial,
		"ground_option": params.GroundMaterial,
		"catalog":       params.Catalog,
		"output":        params.Output,
		"interactive":   strconv.FormatBool(params.Interactive),
	})

	if err := ValidateEstimateFlags(params); err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	format, err := resolveFormat(params.Output, cfg)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	svc, err := newService(ctx, cfg, params.Catalog, audit)
	if err != nil {
		return err
	}
	req, err := BuildEstimateRequest(params, cfg)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}

	if params.Interactive {
		req, err = runCalculator(ctx, svc, req, cfg)
		if err != nil {
			audit.logFailure(ctx, err)
			return err
		}
		cmd.PrintErrln("\nFinal Estimate:")
	}

	res, err := svc.Estimate(ctx, req)
	if err != nil {
		audit.logFailure(ctx, err)
		return fmt.Errorf("estimating: %w", err)
	}

	w, closeOut, err := openOutput(cmd, params.Out, format)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	in := export.Input{
		Result:      res,
		Areas:       req.Areas,
		Selection:   req.Selection,
		Unit:        req.Unit,
		Title:       params.Title,
		Currency:    cfg.Estimator.Currency,
		Precision:   cfg.Output.Precision,
		GeneratedAt: time.Now(),
	}
	renderErr := export.RenderResult(w, format, in)
	if closeErr := closeOut(); renderErr == nil {
		renderErr = closeErr
	}
	if renderErr != nil {
		audit.logFailure(ctx, renderErr)
		return fmt.Errorf("rendering %s: %w", format, renderErr)
	}
	if params.Out != "" {
		cmd.PrintErrf("Quote written to %s\n", params.Out)
	}

	audit.logSuccess(ctx, 1, res.NetTotal)
	log.Info().Ctx(ctx).Str("component", "cli").Str("operation", "estimate").
		Float64("net_total", res.NetTotal).
		Int("adjustments", len(res.Adjustments)).
		Dur("duration_ms", time.Since(audit.start)).
		Msg("estimate complete")

	return nil
}

// runCalculator opens the interactive calculator on req and returns the
// inputs the user left it with.
func runCalculator(ctx context.Context, svc *engine.Service, req engine.Request, cfg *config.Config) (engine.Request, error) {
	model := tui.NewCalculatorModel(ctx, svc.Estimator(), req, tui.CalculatorOptions{
		Currency:  cfg.Estimator.Currency,
		Precision: cfg.Output.Precision,
	})

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return engine.Request{}, fmt.Errorf("running calculator: %w", err)
	}
	calc, ok := finalModel.(*tui.CalculatorModel)
	if !ok {
		return engine.Request{}, errors.New("unexpected calculator model type")
	}
	return calc.GetInputs(), nil
}
