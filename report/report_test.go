package report

import (
	"brc/agg"
	"brc/chunk"
	"brc/source"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var result = agg.Result{
	"Oslo":   {Min: 50, Mean: 61, Max: 72},
	"Bergen": {Min: 33, Mean: 33, Max: 33},
	"Vardø":  {Min: -123, Mean: -5, Max: 0},
}

func TestWriteBraces(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteBraces(&b, result))
	assert.Equal(t, "{Bergen=3.3/3.3/3.3, Oslo=5.0/6.1/7.2, Vardø=-12.3/-0.5/0.0}\n", b.String())
}

func TestWriteBracesEmpty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteBraces(&b, agg.Result{}))
	assert.Equal(t, "{}\n", b.String())
}

func TestWriteTable(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Write(&b, FormatTable, result))
	out := b.String()

	assert.Contains(t, out, "Key")
	assert.Contains(t, out, "Mean")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var bergen, oslo int
	for i, l := range lines {
		if strings.Contains(l, "Bergen") {
			bergen = i
			assert.Contains(t, l, "3.3")
		}
		if strings.Contains(l, "Oslo") {
			oslo = i
			assert.Contains(t, l, "6.1")
		}
	}
	assert.Less(t, bergen, oslo)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("braces")
	require.NoError(t, err)
	assert.Equal(t, FormatBraces, f)

	f, err = ParseFormat("table")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}

func TestTimings(t *testing.T) {
	tm := NewTimings(2)
	tm.PlanDone([]chunk.Range{{Start: 0, End: 10}, {Start: 10, End: 20}}, time.Millisecond)
	tm.WorkerDone(0, chunk.Range{Start: 0, End: 10}, 3, 5*time.Millisecond)
	tm.WorkerDone(1, chunk.Range{Start: 10, End: 20}, 4, 7*time.Millisecond)
	tm.MergeDone(2, time.Microsecond)
	tm.FinalizeDone(2, time.Microsecond)

	var b bytes.Buffer
	tm.Print(&b)
	out := b.String()
	assert.Contains(t, out, "2 chunks")
	assert.Contains(t, out, "7 records")
	assert.Contains(t, out, "2 keys")
	assert.Contains(t, out, "7ms")
}

func TestParseBraces(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteBraces(&b, result))

	got, err := ParseBraces(&b)
	require.NoError(t, err)
	assert.Equal(t, result, got)

	got, err = ParseBraces(strings.NewReader("{}\n"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseBraces(strings.NewReader("{a=b=1.0/2.0/3.0}"))
	require.NoError(t, err)
	assert.Equal(t, agg.Summary{Min: 10, Mean: 20, Max: 30}, got["a=b"])
}

func TestParseBracesRejects(t *testing.T) {
	var tests = []string{
		"",
		"Oslo=1.0/1.0/1.0",
		"{Oslo=1.0/1.0}",
		"{Oslo 1.0/1.0/1.0}",
		"{Oslo=1.0/x/1.0}",
		"{Oslo=1.0/1.0/1.0, Oslo=1.0/1.0/1.0}",
	}
	for _, in := range tests {
		_, err := ParseBraces(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrBraces, in)
	}
}

func TestGolden(t *testing.T) {
	want, err := os.ReadFile("testdata/measurements.out")
	require.NoError(t, err)
	expected, err := ParseBraces(bytes.NewReader(want))
	require.NoError(t, err)

	for _, strategy := range []source.Strategy{source.StrategyMmap, source.StrategyRead, source.StrategyFile} {
		src, err := source.Open("testdata/measurements.txt", strategy)
		require.NoError(t, err)

		for _, workers := range []int{1, 4, 16} {
			res, err := agg.Run(context.Background(), src, agg.WithWorkers(workers), agg.WithBufferSize(64))
			require.NoError(t, err)
			assert.Equal(t, expected, res, "%s with %d workers", strategy, workers)

			var b bytes.Buffer
			require.NoError(t, WriteBraces(&b, res))
			assert.Equal(t, string(want), b.String())
		}
		require.NoError(t, src.Close())
	}
}
