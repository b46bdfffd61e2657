package record

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	Delimiter  = ';'
	Terminator = '\n'
)

var (
	ErrNoDelimiter  = errors.New("missing delimiter")
	ErrNoTerminator = errors.New("missing terminator")
)

// MalformedError reports a record that could not be parsed. Offset is
// absolute within the input.
type MalformedError struct {
	Offset int64
	Raw    []byte
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record at byte %d: %v: %q", e.Offset, e.Err, e.Raw)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(offset int64, raw []byte, err error) *MalformedError {
	return &MalformedError{
		Offset: offset,
		Raw:    bytes.Clone(raw),
		Err:    err,
	}
}

// Scanner walks the records of a byte window without copying. Key returns a
// view into the window, only valid until the window is reused.
//
// A scanner cannot be rewound, construct a new one over the same window to
// scan it again.
type Scanner struct {
	buf   []byte
	base  int64
	pos   int
	atEOF bool

	key   []byte
	value Value
	err   error
}

// NewScanner returns a scanner over buf, whose first byte sits at offset
// base of the input. When atEOF is set, the last record of buf may omit its
// terminator.
func NewScanner(buf []byte, base int64, atEOF bool) *Scanner {
	return &Scanner{
		buf:   buf,
		base:  base,
		atEOF: atEOF,
	}
}

// Next advances to the following record. It returns false at the end of
// the window or on the first malformed record, see Err.
func (s *Scanner) Next() bool {
	if s.err != nil || s.pos >= len(s.buf) {
		return false
	}

	rest := s.buf[s.pos:]
	start := s.base + int64(s.pos)

	end := bytes.IndexByte(rest, Terminator)
	next := end + 1
	if end < 0 {
		if !s.atEOF {
			s.err = malformed(start, rest, ErrNoTerminator)
			return false
		}
		end = len(rest)
		next = end
	}
	line := rest[:end]

	key, text, ok := bytes.Cut(line, []byte{Delimiter})
	if !ok {
		s.err = malformed(start, line, ErrNoDelimiter)
		return false
	}

	v, err := ParseValue(text)
	if err != nil {
		s.err = malformed(start+int64(len(key)+1), text, err)
		return false
	}

	s.key = key
	s.value = v
	s.pos += next
	return true
}

func (s *Scanner) Key() []byte {
	return s.key
}

func (s *Scanner) Value() Value {
	return s.value
}

// Offset returns the absolute offset just past the last scanned record.
func (s *Scanner) Offset() int64 {
	return s.base + int64(s.pos)
}

func (s *Scanner) Err() error {
	return s.err
}
