package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const probeSize = 128

// Range is the half-open byte interval [Start, End).
type Range struct {
	Start int64
	End   int64
}

func (r Range) Len() int64 {
	return r.End - r.Start
}

// Plan splits [0, n) into at most workers contiguous ranges. Every range but
// the last ends immediately after a term byte, so no record straddles two
// ranges. An empty input yields no ranges.
func Plan(r io.ReaderAt, n int64, workers int, term byte) ([]Range, error) {
	if n <= 0 {
		return nil, nil
	}
	workers = max(workers, 1)

	ranges := make([]Range, 0, workers)
	start := int64(0)

	for i := 1; i < workers; i++ {
		target := int64(i) * (n / int64(workers))
		target += int64(i) * (n % int64(workers)) / int64(workers)

		// The byte just before the target may already be a terminator.
		from := max(target-1, start)
		end, err := nextBoundary(r, n, from, term)
		if err != nil {
			return nil, fmt.Errorf("unable to align chunk %d: %w", i, err)
		}
		if end >= n {
			break
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}

	ranges = append(ranges, Range{Start: start, End: n})
	return ranges, nil
}

// nextBoundary returns the offset just past the first term byte at or after
// from, or n when there is none.
func nextBoundary(r io.ReaderAt, n, from int64, term byte) (int64, error) {
	buf := make([]byte, probeSize)
	pos := from

	for pos < n {
		want := min(int64(len(buf)), n-pos)
		read, err := r.ReadAt(buf[:want], pos)
		if err != nil && !(errors.Is(err, io.EOF) && int64(read) == want) {
			return 0, fmt.Errorf("unable to read at %d: %w", pos, err)
		}

		if i := bytes.IndexByte(buf[:read], term); i >= 0 {
			return pos + int64(i) + 1, nil
		}
		pos += int64(read)

		// Long records, widen the probe.
		if len(buf) < 64*1024 {
			buf = make([]byte, len(buf)*2)
		}
	}
	return n, nil
}

// Naive splits [0, n) into workers equal ranges without looking at the
// data. Boundaries generally fall inside records.
func Naive(n int64, workers int) []Range {
	if n <= 0 {
		return nil
	}
	workers = max(workers, 1)

	ranges := make([]Range, 0, workers)
	start := int64(0)
	for i := 1; i <= workers; i++ {
		end := int64(i) * n / int64(workers)
		if end == start {
			continue
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}
