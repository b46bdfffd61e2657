package agg

import (
	"brc/chunk"
	"log/slog"
	"time"
)

// Observer is notified of phase boundaries of a run. WorkerDone is called
// from worker goroutines, implementations must be safe for concurrent use.
// Observers never influence the result.
type Observer interface {
	PlanDone(ranges []chunk.Range, elapsed time.Duration)
	WorkerDone(id int, r chunk.Range, records int64, elapsed time.Duration)
	MergeDone(keys int, elapsed time.Duration)
	FinalizeDone(keys int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) PlanDone([]chunk.Range, time.Duration)             {}
func (nopObserver) WorkerDone(int, chunk.Range, int64, time.Duration) {}
func (nopObserver) MergeDone(int, time.Duration)                      {}
func (nopObserver) FinalizeDone(int, time.Duration)                   {}

type multiObserver []Observer

func (m multiObserver) PlanDone(ranges []chunk.Range, elapsed time.Duration) {
	for _, o := range m {
		o.PlanDone(ranges, elapsed)
	}
}

func (m multiObserver) WorkerDone(id int, r chunk.Range, records int64, elapsed time.Duration) {
	for _, o := range m {
		o.WorkerDone(id, r, records, elapsed)
	}
}

func (m multiObserver) MergeDone(keys int, elapsed time.Duration) {
	for _, o := range m {
		o.MergeDone(keys, elapsed)
	}
}

func (m multiObserver) FinalizeDone(keys int, elapsed time.Duration) {
	for _, o := range m {
		o.FinalizeDone(keys, elapsed)
	}
}

// LogObserver logs every phase boundary at debug level.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) PlanDone(ranges []chunk.Range, elapsed time.Duration) {
	o.Logger.Debug("planned chunks",
		slog.Int("chunks", len(ranges)),
		slog.Duration("elapsed", elapsed),
	)
}

func (o LogObserver) WorkerDone(id int, r chunk.Range, records int64, elapsed time.Duration) {
	o.Logger.Debug("worker finished",
		slog.Int("worker", id),
		slog.Int64("start", r.Start),
		slog.Int64("end", r.End),
		slog.Int64("records", records),
		slog.Duration("elapsed", elapsed),
	)
}

func (o LogObserver) MergeDone(keys int, elapsed time.Duration) {
	o.Logger.Debug("merged partials",
		slog.Int("keys", keys),
		slog.Duration("elapsed", elapsed),
	)
}

func (o LogObserver) FinalizeDone(keys int, elapsed time.Duration) {
	o.Logger.Debug("finalized results",
		slog.Int("keys", keys),
		slog.Duration("elapsed", elapsed),
	)
}
