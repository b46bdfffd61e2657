package main

import (
	"brc/agg"
	"brc/record"
	"brc/report"
	"brc/source"
	"brc/table"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
)

const (
	exitUnavailable = 1
	exitMalformed   = 2
	exitOther       = 3
)

var (
	filePath   string
	numWorkers int
	ioName     string
	formatName string
	hashName   string
	bufSize    int
	stats      bool
	profile    bool
	verbose    bool
)

func init() {
	flag.StringVar(&filePath, "filePath", "", "measurements file (or first argument)")
	flag.IntVar(&numWorkers, "numWorkers", runtime.NumCPU(), "number of workers")
	flag.StringVar(&ioName, "io", "mmap", "io strategy: mmap, read or file")
	flag.StringVar(&formatName, "format", "braces", "output format: braces or table")
	flag.StringVar(&hashName, "hash", "xxhash", "key hash: xxhash or fnv")
	flag.IntVar(&bufSize, "bufSize", agg.DEFAULT_BUFFER_SIZE, "read window per worker in bytes")
	flag.BoolVar(&stats, "stats", false, "print phase timings to stderr")
	flag.BoolVar(&profile, "profile", false, "profile cpu")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func main() {
	flag.Parse()
	if filePath == "" && flag.NArg() > 0 {
		filePath = flag.Arg(0)
	}
	os.Exit(run())
}

func run() int {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: brc [flags] <file>")
		flag.PrintDefaults()
		return exitOther
	}

	strategy, err := source.ParseStrategy(ioName)
	if err != nil {
		logger.Error("invalid flag", slog.Any("error", err))
		return exitOther
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		logger.Error("invalid flag", slog.Any("error", err))
		return exitOther
	}
	hasher, err := parseHasher(hashName)
	if err != nil {
		logger.Error("invalid flag", slog.Any("error", err))
		return exitOther
	}

	if profile {
		f, err := os.Create("cpu_profile.pprof")
		if err != nil {
			logger.Error("unable to create CPU profile", slog.Any("error", err))
			return exitOther
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("unable to start CPU profile", slog.Any("error", err))
			return exitOther
		}
		defer pprof.StopCPUProfile()
	}

	src, err := source.Open(filePath, strategy)
	if err != nil {
		logger.Error("source unavailable", slog.String("path", filePath), slog.Any("error", err))
		return exitCode(err)
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	timings := report.NewTimings(numWorkers)
	options := []agg.Option{
		agg.WithWorkers(numWorkers),
		agg.WithBufferSize(bufSize),
		agg.WithHasher(hasher),
		agg.WithLogger(logger),
		agg.WithObserver(timings),
	}
	if verbose {
		options = append(options, agg.WithObserver(agg.LogObserver{Logger: logger}))
	}

	res, err := agg.Run(ctx, src, options...)
	if err != nil {
		var me *record.MalformedError
		if errors.As(err, &me) {
			logger.Error("malformed record",
				slog.Int64("offset", me.Offset),
				slog.String("raw", string(me.Raw)),
				slog.String("reason", me.Err.Error()),
			)
		} else {
			logger.Error("aggregation failed", slog.Any("error", err))
		}
		return exitCode(err)
	}

	if err := report.Write(os.Stdout, format, res); err != nil {
		logger.Error("unable to write results", slog.Any("error", err))
		return exitOther
	}
	if stats {
		timings.Print(os.Stderr)
	}
	return 0
}

// exitCode maps the error of a failed run to the process exit status.
func exitCode(err error) int {
	var me *record.MalformedError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, source.ErrUnavailable):
		return exitUnavailable
	case errors.As(err, &me):
		return exitMalformed
	}
	return exitOther
}

func parseHasher(name string) (table.Hasher, error) {
	switch name {
	case "xxhash":
		return table.XXHash, nil
	case "fnv":
		return table.FNV1a, nil
	}
	return nil, fmt.Errorf("unknown hash %q", name)
}
