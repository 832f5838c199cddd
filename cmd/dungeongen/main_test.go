package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/dungeongen/internal/config"
	"github.com/annel0/dungeongen/internal/export"
	"github.com/annel0/dungeongen/internal/metrics"
)

func TestRunWritesMapAndSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Seed = 21
	out := filepath.Join(t.TempDir(), "level.json.zst")
	opts := options{ASCII: true, Out: out}

	var stdout bytes.Buffer
	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	require.NoError(t, run(context.Background(), cfg, opts, recorder, &stdout))

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Len(t, lines, cfg.Generation.GridDepth+1)
	assert.Len(t, []rune(lines[0]), cfg.Generation.GridWidth)
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "seed=21 "))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	s, err := export.ReadSnapshot(f)
	require.NoError(t, err)
	assert.Equal(t, int64(21), s.Seed)
	assert.Equal(t, lines[:len(lines)-1], s.Tiles)
}

func TestRunWithoutASCII(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Seed = 3

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, options{}, metrics.NewRecorder(prometheus.NewRegistry()), &stdout))

	assert.Equal(t, 1, strings.Count(stdout.String(), "\n"), "только строка статистики")
}

func TestRunSnapshotError(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Seed = 3
	opts := options{Out: filepath.Join(t.TempDir(), "missing", "level.json")}

	err := run(context.Background(), cfg, opts, metrics.NewRecorder(prometheus.NewRegistry()), &bytes.Buffer{})
	assert.ErrorContains(t, err, "create snapshot")
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, options{Seed: 5, MetricsAddr: ":2112", OTLP: "localhost:4318"})

	assert.Equal(t, int64(5), cfg.Generation.Seed)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
	assert.True(t, cfg.Telemetry.Enabled)

	cfg = config.Default()
	applyFlags(cfg, options{})
	assert.Equal(t, config.Default(), cfg)
}
