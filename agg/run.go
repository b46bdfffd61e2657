package agg

import (
	"brc/chunk"
	"brc/record"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source is a read-only, randomly addressable view of the whole input. It
// must stay valid and unchanged for the duration of a run.
type Source interface {
	io.ReaderAt
	Len() int64
}

// Run aggregates every record of src and returns the finalized summaries.
// The first malformed record aborts the run and no result is returned.
func Run(ctx context.Context, src Source, options ...Option) (Result, error) {
	cfg := newConfig(options)
	n := src.Len()
	cfg.logger.Debug("starting run", slog.Int64("bytes", n), slog.Int("workers", cfg.workers))

	t := time.Now()
	ranges, err := chunk.Plan(src, n, cfg.workers, record.Terminator)
	if err != nil {
		return nil, fmt.Errorf("unable to plan chunks: %w", err)
	}
	cfg.observer.PlanDone(ranges, time.Since(t))

	partials, err := collect(ctx, src, ranges, cfg)
	if err != nil {
		cfg.logger.Debug("run failed", slog.Any("error", err))
		return nil, err
	}

	t = time.Now()
	combined := Merge(partials...)
	cfg.observer.MergeDone(len(combined), time.Since(t))

	t = time.Now()
	result := Finalize(combined)
	cfg.observer.FinalizeDone(len(result), time.Since(t))

	cfg.logger.Debug("finished run",
		slog.Int("keys", len(result)),
		slog.Int64("records", combined.Records()),
	)
	return result, nil
}

// Collect aggregates each range on its own goroutine and returns the
// partials once all of them are done. The ranges must partition the input
// on record boundaries, as chunk.Plan produces.
func Collect(ctx context.Context, src Source, ranges []chunk.Range, options ...Option) ([]*Partial, error) {
	return collect(ctx, src, ranges, newConfig(options))
}

func collect(ctx context.Context, src Source, ranges []chunk.Range, cfg *config) ([]*Partial, error) {
	n := src.Len()
	rx := make(chan *Partial, len(ranges))
	eg, ectx := errgroup.WithContext(ctx)

	for i, rng := range ranges {
		eg.Go(func() error {
			t := time.Now()
			p, err := aggregate(ectx, src, rng, rng.End == n, cfg)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			cfg.observer.WorkerDone(i, rng, p.Records, time.Since(t))
			rx <- p
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	close(rx)

	partials := make([]*Partial, 0, len(ranges))
	for p := range rx {
		partials = append(partials, p)
	}
	return partials, nil
}

// Merge combines partials into one aggregate. The result does not depend
// on the order of partials.
func Merge(partials ...*Partial) Combined {
	combined := make(Combined)
	for _, p := range partials {
		p.stats.Range(func(key string, s *Stats) bool {
			cs := combined[key]
			cs.Merge(*s)
			combined[key] = cs
			return true
		})
	}
	return combined
}

// Finalize turns every aggregate into its rounded summary.
func Finalize(c Combined) Result {
	result := make(Result, len(c))
	for key, s := range c {
		result[key] = s.Summary()
	}
	return result
}
