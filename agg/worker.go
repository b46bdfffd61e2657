package agg

import (
	"brc/chunk"
	"brc/record"
	"brc/table"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Partial is the aggregate of a single chunk. It belongs to the worker that
// built it until handed to Merge.
type Partial struct {
	Range   chunk.Range
	Records int64
	stats   *table.Table[Stats]
}

func newPartial(r chunk.Range, cfg *config) *Partial {
	return &Partial{
		Range: r,
		stats: table.New[Stats](cfg.capacity, cfg.hasher),
	}
}

func (p *Partial) Keys() int {
	return p.stats.Len()
}

func (p *Partial) fold(s *record.Scanner) error {
	for s.Next() {
		st, _ := p.stats.Upsert(s.Key())
		st.Add(s.Value())
		p.Records++
	}
	return s.Err()
}

// aggregate scans r within rng one window at a time, carrying an incomplete
// trailing record over to the next window. atEnd reports whether rng ends
// at the end of the input, where a final record may lack its terminator.
func aggregate(ctx context.Context, r io.ReaderAt, rng chunk.Range, atEnd bool, cfg *config) (*Partial, error) {
	p := newPartial(rng, cfg)
	sr := io.NewSectionReader(r, rng.Start, rng.Len())

	buf := make([]byte, cfg.bufSize)
	base := rng.Start
	start := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if start == len(buf) {
			grown := make([]byte, len(buf)*2)
			copy(grown, buf)
			buf = grown
		}

		n, err := sr.Read(buf[start:])
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unable to read chunk at %d: %w", base+int64(start), err)
		}
		if start+n == 0 {
			break
		}

		window := buf[:start+n]
		if n == 0 {
			// Nothing left to read, what remains is the last record.
			if err := p.fold(record.NewScanner(window, base, atEnd)); err != nil {
				return nil, err
			}
			break
		}

		newline := bytes.LastIndexByte(window, record.Terminator)
		if newline < 0 {
			start = len(window)
			continue
		}

		if err := p.fold(record.NewScanner(window[:newline+1], base, false)); err != nil {
			return nil, err
		}

		remaining := window[newline+1:]
		base += int64(newline + 1)
		start = copy(buf, remaining)
	}

	return p, nil
}
