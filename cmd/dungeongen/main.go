package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/dungeongen/internal/config"
	"github.com/annel0/dungeongen/internal/dungeon"
	"github.com/annel0/dungeongen/internal/export"
	"github.com/annel0/dungeongen/internal/logging"
	"github.com/annel0/dungeongen/internal/metrics"
	"github.com/annel0/dungeongen/internal/observability"
)

// options значения флагов командной строки
type options struct {
	ConfigPath  string
	Seed        int64
	ASCII       bool
	Out         string
	MetricsAddr string
	OTLP        string
}

func main() {
	var opts options
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML config path (default: $DUNGEON_CONFIG)")
	flag.Int64Var(&opts.Seed, "seed", 0, "Random seed (0: config, $DUNGEON_SEED or time)")
	flag.BoolVar(&opts.ASCII, "ascii", true, "Print ASCII map to stdout")
	flag.StringVar(&opts.Out, "out", "", "Snapshot path (.zst suffix enables zstd)")
	flag.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve /metrics on this address until interrupted")
	flag.StringVar(&opts.OTLP, "otlp", "", "OTLP HTTP endpoint, enables tracing (e.g. localhost:4318)")
	flag.Parse()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Некорректная конфигурация: %v", err)
	}

	if err := initLogging(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, opts.OTLP)
		if err != nil {
			logging.Error("Трассировка отключена: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("Ошибка завершения трассировки: %v", err)
				}
			}()
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(registry)

	if err := run(ctx, cfg, opts, recorder, os.Stdout); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}

	if addr := cfg.Metrics.GetAddr(); addr != "" {
		srv := metrics.StartHTTP(addr, registry)
		logging.Info("Ожидание сигнала завершения...")
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Ошибка остановки сервера метрик: %v", err)
		}
	}
}

// applyFlags переносит заданные флаги поверх конфигурации
func applyFlags(cfg *config.Config, opts options) {
	if opts.Seed != 0 {
		cfg.Generation.Seed = opts.Seed
	}
	if opts.MetricsAddr != "" {
		cfg.Metrics.Addr = opts.MetricsAddr
	}
	if opts.OTLP != "" {
		cfg.Telemetry.Enabled = true
	}
}

func initLogging(lc config.LoggingConfig) error {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	logging.SetLogDir(lc.Dir)
	if err := logging.InitDefaultLogger("dungeongen"); err != nil {
		return err
	}
	logging.SetDefaultLevel(level)
	logging.GetLoggerManager().SetLevel(level)
	return nil
}

// run генерирует один уровень, печатает карту и статистику и пишет дамп
func run(ctx context.Context, cfg *config.Config, opts options, recorder *metrics.Recorder, stdout io.Writer) error {
	seed := cfg.Generation.ResolveSeed()
	gen := dungeon.NewGenerator(cfg.Generation.Params(), seed)

	start := time.Now()
	layout := gen.Generate(ctx)
	recorder.Observe(layout.Stats, time.Since(start))

	if opts.ASCII {
		if _, err := io.WriteString(stdout, export.RenderASCII(layout.Grid)); err != nil {
			return fmt.Errorf("write map: %w", err)
		}
	}
	st := layout.Stats
	fmt.Fprintf(stdout, "seed=%d id=%s rooms=%d/%d corridors=%d bridges=%d fallbacks=%d water_points=%d/%d rivers=%d ponds=%d\n",
		seed, layout.ID, st.RoomsPlaced, st.RoomsRequested, st.Corridors, st.Bridges,
		st.CorridorFallbacks+st.RiverFallbacks, st.WaterPoints, st.WaterPointsRequested, st.RiverSegments, st.Ponds)

	if opts.Out != "" {
		if err := writeSnapshotFile(opts.Out, layout); err != nil {
			return err
		}
		logging.Info("Дамп уровня записан в %s", opts.Out)
	}
	return nil
}

func writeSnapshotFile(path string, layout *dungeon.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := export.WriteSnapshot(f, layout, strings.HasSuffix(path, ".zst")); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
