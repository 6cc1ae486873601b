package engine

import (
	"context"
	"time"

	"github.com/rshade/albedo/internal/logging"
)

// Request bundles the inputs of one estimate.
type Request struct {
	Areas     AreaInputs `json:"areas"     yaml:"areas"`
	Unit      Unit       `json:"unit"      yaml:"unit"`
	Selection Selection  `json:"selection" yaml:"selection"`
}

// DefaultRequest returns the starting inputs of a fresh session.
func DefaultRequest() Request {
	return Request{Areas: DefaultAreas(), Unit: UnitSqFt, Selection: DefaultSelection()}
}

// Service wraps an Estimator with context-aware logging for CLI, TUI and
// batch callers.
type Service struct {
	estimator *Estimator
}

// NewService returns a Service over est.
func NewService(est *Estimator) *Service {
	return &Service{estimator: est}
}

// Estimator returns the wrapped estimator.
func (s *Service) Estimator() *Estimator { return s.estimator }

// Estimate runs one estimate.
//
// The method logs at appropriate levels:
//   - DEBUG: inputs
//   - WARN: each adjustment made to the inputs
//   - INFO: completion with net total and payback
//
// It returns an error only when ctx is already done.
func (s *Service) Estimate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate").
		Str("unit", string(req.Unit)).
		Float64("roof_area", req.Areas.Roof).
		Float64("garden_area", req.Areas.Garden).
		Float64("ground_area", req.Areas.Ground).
		Str("roof_option", string(req.Selection.Roof)).
		Str("garden_option", string(req.Selection.Garden)).
		Str("ground_option", string(req.Selection.Ground)).
		Msg("starting estimate")

	res := s.estimator.Estimate(req.Areas, req.Unit, req.Selection)

	for _, adj := range res.Adjustments {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Str("category", string(adj.Category)).
			Str("kind", string(adj.Kind)).
			Msg(adj.Detail)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate").
		Float64("net_total", res.NetTotal).
		Float64("yearly_savings", res.YearlySavings).
		Bool("payback_computable", res.Payback.Computable).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("estimate complete")

	return res, nil
}
