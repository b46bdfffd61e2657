package agg

import (
	"brc/record"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Stats is the running aggregate of one key. Sum is kept in exact tenths.
type Stats struct {
	Min   record.Value
	Max   record.Value
	Sum   Sum
	Count int64
}

// Add folds v into s. A zero Stats is treated as empty.
func (s *Stats) Add(v record.Value) {
	if s.Count == 0 {
		*s = Stats{Min: v, Max: v, Sum: SumOf(int64(v)), Count: 1}
		return
	}
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
	s.Sum.Add(int64(v))
	s.Count++
}

// Merge folds o into s.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = o
		return
	}
	s.Min = min(s.Min, o.Min)
	s.Max = max(s.Max, o.Max)
	s.Sum.Merge(o.Sum)
	s.Count += o.Count
}

// Summary is a finalized (min, mean, max) triple, one fractional digit each.
type Summary struct {
	Min  record.Value
	Mean record.Value
	Max  record.Value
}

// Summary divides Sum by Count exactly and rounds the mean half away from
// zero. Min and Max already carry a single fractional digit.
func (s Stats) Summary() Summary {
	return Summary{
		Min:  s.Min,
		Mean: record.Value(s.Sum.Quo(s.Count)),
		Max:  s.Max,
	}
}

// RoundHalfAway returns num/den rounded to the nearest integer, with exact
// midpoints rounded away from zero. den must be positive.
func RoundHalfAway(num, den int64) int64 {
	return SumOf(num).Quo(den)
}

// Combined is the merged aggregate of a whole input.
type Combined map[string]Stats

// Records returns the number of records folded into c.
func (c Combined) Records() int64 {
	var n int64
	for _, s := range c {
		n += s.Count
	}
	return n
}

// Result maps each key to its finalized summary.
type Result map[string]Summary

// Keys returns the keys of r in byte order.
func (r Result) Keys() []string {
	keys := maps.Keys(r)
	slices.Sort(keys)
	return keys
}
