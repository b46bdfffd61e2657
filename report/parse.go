package report

import (
	"brc/agg"
	"brc/record"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var ErrBraces = errors.New("invalid braces output")

// ParseBraces reads output written by WriteBraces back into a Result. Keys
// containing ", " cannot be told apart from the entry separator and are
// rejected or misread.
func ParseBraces(r io.Reader) (agg.Result, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read results: %w", err)
	}

	b = bytes.TrimSuffix(b, []byte{'\n'})
	if len(b) < 2 || b[0] != '{' || b[len(b)-1] != '}' {
		return nil, fmt.Errorf("%w: missing braces", ErrBraces)
	}
	b = b[1 : len(b)-1]

	res := make(agg.Result)
	if len(b) == 0 {
		return res, nil
	}

	for _, entry := range bytes.Split(b, []byte(", ")) {
		i := bytes.LastIndexByte(entry, '=')
		if i < 0 {
			return nil, fmt.Errorf("%w: entry %q has no '='", ErrBraces, entry)
		}
		key := string(entry[:i])

		parts := bytes.Split(entry[i+1:], []byte{'/'})
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: entry %q is not min/mean/max", ErrBraces, entry)
		}
		var vals [3]record.Value
		for j, p := range parts {
			if vals[j], err = record.ParseValue(p); err != nil {
				return nil, fmt.Errorf("%w: entry %q: %w", ErrBraces, entry, err)
			}
		}

		if _, ok := res[key]; ok {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrBraces, key)
		}
		res[key] = agg.Summary{Min: vals[0], Mean: vals[1], Max: vals[2]}
	}
	return res, nil
}
