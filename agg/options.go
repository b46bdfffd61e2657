package agg

import (
	"brc/table"
	"io"
	"log/slog"
	"runtime"
)

const (
	DEFAULT_BUFFER_SIZE = 1024 * 1024 // 1 MB
	DEFAULT_CAPACITY    = 1024
)

type config struct {
	workers  int
	bufSize  int
	capacity int
	hasher   table.Hasher
	observer Observer
	logger   *slog.Logger
}

type Option func(*config) *config

func newConfig(options []Option) *config {
	cfg := &config{
		workers:  runtime.NumCPU(),
		bufSize:  DEFAULT_BUFFER_SIZE,
		capacity: DEFAULT_CAPACITY,
		hasher:   table.XXHash,
		observer: nopObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		cfg = opt(cfg)
	}
	return cfg
}

// WithWorkers sets the number of chunks (and goroutines) a run is split
// into. Values below one mean one.
func WithWorkers(n int) Option {
	return func(c *config) *config {
		c.workers = max(n, 1)
		return c
	}
}

// WithBufferSize sets the read window of each worker. Records longer than
// the window still parse, the window grows to fit them.
func WithBufferSize(n int) Option {
	return func(c *config) *config {
		if n > 0 {
			c.bufSize = n
		}
		return c
	}
}

// WithCapacity hints the number of distinct keys per worker.
func WithCapacity(n int) Option {
	return func(c *config) *config {
		c.capacity = n
		return c
	}
}

func WithHasher(h table.Hasher) Option {
	return func(c *config) *config {
		if h != nil {
			c.hasher = h
		}
		return c
	}
}

// WithObserver adds o to the observers notified of phase boundaries.
func WithObserver(o Observer) Option {
	return func(c *config) *config {
		if _, ok := c.observer.(nopObserver); ok {
			c.observer = o
			return c
		}
		c.observer = multiObserver{c.observer, o}
		return c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) *config {
		c.logger = l
		return c
	}
}
