package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

var ErrUnavailable = errors.New("source unavailable")

// Source is an immutable, randomly addressable view of an input.
type Source interface {
	ReadAt(p []byte, off int64) (int, error)
	Len() int64
	Close() error
}

type Strategy int

const (
	StrategyMmap Strategy = iota
	StrategyRead
	StrategyFile
)

func (s Strategy) String() string {
	switch s {
	case StrategyMmap:
		return "mmap"
	case StrategyRead:
		return "read"
	case StrategyFile:
		return "file"
	}
	return "unknown"
}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{StrategyMmap, StrategyRead, StrategyFile} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown io strategy %q", name)
}

// Open returns a Source for the file at path using the given strategy.
// Every failure wraps ErrUnavailable.
func Open(path string, strategy Strategy) (Source, error) {
	var (
		src Source
		err error
	)

	switch strategy {
	case StrategyMmap:
		src, err = openMmap(path)
	case StrategyRead:
		src, err = openRead(path)
	case StrategyFile:
		src, err = openFile(path)
	default:
		err = fmt.Errorf("unknown io strategy %d", strategy)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return src, nil
}

type mmapSource struct {
	*mmap.ReaderAt
}

func openMmap(path string) (Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to map %s: %w", path, err)
	}
	return mmapSource{r}, nil
}

func (m mmapSource) Len() int64 {
	return int64(m.ReaderAt.Len())
}

type memSource struct {
	r *bytes.Reader
}

// FromBytes returns a Source over b. b must not be modified while the
// source is in use.
func FromBytes(b []byte) Source {
	return memSource{r: bytes.NewReader(b)}
}

func openRead(path string) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return FromBytes(b), nil
}

func (m memSource) ReadAt(p []byte, off int64) (int, error) {
	return m.r.ReadAt(p, off)
}

func (m memSource) Len() int64 {
	return m.r.Size()
}

func (m memSource) Close() error {
	return nil
}

type fileSource struct {
	*os.File
	size int64
}

func openFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	fs, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if fs.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return fileSource{File: f, size: fs.Size()}, nil
}

func (f fileSource) Len() int64 {
	return f.size
}
