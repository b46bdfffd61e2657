package main

import (
	"brc/agg"
	"brc/record"
	"brc/source"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	_, missing := source.Open(filepath.Join(t.TempDir(), "missing.txt"), source.StrategyRead)
	require.Error(t, missing)

	_, malformed := agg.Run(context.Background(), source.FromBytes([]byte("Oslo;1.0\nBergen;x\n")), agg.WithWorkers(2))
	require.Error(t, malformed)

	var tests = []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 0},
		{"missing file", missing, exitUnavailable},
		{"wrapped unavailable", fmt.Errorf("open: %w", source.ErrUnavailable), exitUnavailable},
		{"malformed run", malformed, exitMalformed},
		{"malformed wrapped", fmt.Errorf("worker 3: %w", &record.MalformedError{Offset: 9, Err: record.ErrSyntax}), exitMalformed},
		{"canceled", context.Canceled, exitOther},
		{"other", fmt.Errorf("boom"), exitOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), tt.name)
	}
}

func TestParseHasher(t *testing.T) {
	for _, name := range []string{"xxhash", "fnv"} {
		h, err := parseHasher(name)
		require.NoError(t, err)
		assert.NotNil(t, h)
	}
	_, err := parseHasher("md5")
	assert.Error(t, err)
}
