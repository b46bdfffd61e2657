package report

import (
	"brc/chunk"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/rodaine/table"
)

// Timings is an agg.Observer that records how long each phase took.
type Timings struct {
	mu sync.Mutex

	chunks   int
	records  int64
	keys     int
	plan     time.Duration
	merge    time.Duration
	finalize time.Duration
	workers  *tachymeter.Tachymeter
}

func NewTimings(workers int) *Timings {
	return &Timings{
		workers: tachymeter.New(&tachymeter.Config{Size: max(workers, 1)}),
	}
}

func (t *Timings) PlanDone(ranges []chunk.Range, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = len(ranges)
	t.plan = elapsed
}

func (t *Timings) WorkerDone(_ int, _ chunk.Range, records int64, elapsed time.Duration) {
	t.mu.Lock()
	t.records += records
	t.mu.Unlock()
	t.workers.AddTime(elapsed)
}

func (t *Timings) MergeDone(keys int, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys = keys
	t.merge = elapsed
}

func (t *Timings) FinalizeDone(_ int, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finalize = elapsed
}

// Print writes a summary table of the recorded phases to w.
func (t *Timings) Print(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.
		New("Phase", "Elapsed", "Detail").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(w)

	tbl.AddRow("plan", t.plan, fmt.Sprintf("%d chunks", t.chunks))
	if t.chunks > 0 {
		m := t.workers.Calc()
		tbl.AddRow("workers (max)", m.Time.Max, fmt.Sprintf("%d records", t.records))
		tbl.AddRow("workers (p50)", m.Time.P50, "")
		tbl.AddRow("workers (min)", m.Time.Min, "")
	}
	tbl.AddRow("merge", t.merge, fmt.Sprintf("%d keys", t.keys))
	tbl.AddRow("finalize", t.finalize, "")
	tbl.Print()
}
