// Package harvest orchestrates the collectors: dispatch, error isolation,
// deduplication, and tabular export.
package harvest

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/heartland-harvester/internal/collector"
	"github.com/sells-group/heartland-harvester/internal/evidence"
)

// Options controls a harvest run.
type Options struct {
	// Limit is the maximum number of records per collector.
	Limit int

	// Threads bounds how many collectors run concurrently. A hint, not a
	// correctness constraint.
	Threads int

	// DryRun skips all collector invocation and yields an empty result.
	DryRun bool
}

// Runner invokes the enabled collectors, isolates their failures, and
// deduplicates the combined output.
type Runner struct {
	collectors []collector.Collector
	opts       Options
}

// NewRunner creates a Runner over the given collectors. Collector order is
// preserved into the concatenated output regardless of completion order.
func NewRunner(opts Options, collectors ...collector.Collector) *Runner {
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	return &Runner{collectors: collectors, opts: opts}
}

// Run executes the harvest and returns the deduplicated evidence list.
// A collector failure is logged and contributes zero records; it never
// aborts the other collectors or the run.
func (r *Runner) Run(ctx context.Context) []evidence.Evidence {
	log := zap.L().With(zap.String("run_id", uuid.NewString()))

	if r.opts.DryRun {
		log.Info("dry run: skipping all collectors")
		return nil
	}

	// One result slot per collector keeps concatenation deterministic.
	results := make([][]evidence.Evidence, len(r.collectors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Threads)

	for i, c := range r.collectors {
		i, c := i, c
		if !c.Available() {
			log.Debug("collector skipped: prerequisites missing",
				zap.String("collector", c.Name()),
			)
			continue
		}

		g.Go(func() error {
			items, err := c.Collect(gctx, r.opts.Limit)
			if err != nil {
				log.Error("collector failed",
					zap.String("collector", c.Name()),
					zap.Error(err),
				)
				return nil
			}
			results[i] = items
			log.Info("collector finished",
				zap.String("collector", c.Name()),
				zap.Int("records", len(items)),
			)
			return nil
		})
	}

	_ = g.Wait()

	var all []evidence.Evidence
	for _, items := range results {
		all = append(all, items...)
	}
	return evidence.Dedupe(all)
}
