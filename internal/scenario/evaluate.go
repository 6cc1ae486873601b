package scenario

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/albedo/internal/engine"
	"github.com/rshade/albedo/internal/logging"
)

// Outcome pairs a site with its estimate.
type Outcome struct {
	Site   Site          `json:"site"`
	Result engine.Result `json:"result"`
}

// ProgressCallback receives a snapshot after each site completes. Calls are
// serialized.
type ProgressCallback func(Progress)

// Progress is a snapshot of an evaluation run.
type Progress struct {
	Total     int
	Processed int
	Started   time.Time
}

// Percent returns completion in the range 0..100.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Processed) / float64(p.Total) * 100
}

// Options tunes Evaluate.
type Options struct {
	// Concurrency bounds parallel estimates; 0 means runtime.NumCPU().
	Concurrency int

	OnProgress ProgressCallback
}

// Evaluate estimates every site with svc. Outcomes keep the input order.
// The first failure (an invalid unit or a canceled context) stops the run.
func Evaluate(ctx context.Context, svc *engine.Service, sites []Site, opts Options) ([]Outcome, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	limit := opts.Concurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "scenario").
		Str("operation", "evaluate").
		Int("sites", len(sites)).
		Int("concurrency", limit).
		Msg("evaluating sites")

	outcomes := make([]Outcome, len(sites))

	var mu sync.Mutex
	progress := Progress{Total: len(sites), Started: start}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, site := range sites {
		g.Go(func() error {
			req, err := site.Request()
			if err != nil {
				return err
			}
			res, err := svc.Estimate(gctx, req)
			if err != nil {
				return fmt.Errorf("site %q: %w", site.Name, err)
			}
			outcomes[i] = Outcome{Site: site, Result: res}

			if opts.OnProgress != nil {
				mu.Lock()
				progress.Processed++
				opts.OnProgress(progress)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "scenario").
			Err(err).
			Msg("site evaluation failed")
		return nil, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "scenario").
		Str("operation", "evaluate").
		Int("sites", len(sites)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("site evaluation complete")

	return outcomes, nil
}
