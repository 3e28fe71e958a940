// Package main provides the dataset preparation entry point.
// Executes: load bars → targets → features → prune → split → persist
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/observability"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/orchestrator"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/artifact"
	chstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/clickhouse"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/memory"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/migrations"
	pgstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	symbols := flag.String("symbols", envOr("SYMBOLS", "EURUSD"), "Comma-separated symbols to process")
	barBackend := flag.String("bar-backend", envOr("STORAGE_BACKEND", "postgres"), "Bar storage backend: postgres or clickhouse")
	datasetBackend := flag.String("dataset-backend", envOr("DATASET_BACKEND", "artifact"), "Dataset output backend: artifact (CSV files) or clickhouse")
	outputDir := flag.String("output-dir", envOr("OUTPUT_DIR", "data/processed"), "Output directory for CSV partitions and the feature list")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")

	predictionPeriods := flag.String("prediction-periods", envOr("PREDICTION_PERIODS", "5,10,30"), "Comma-separated forward trend horizons in minutes")
	emaPeriods := flag.String("ema-periods", envOr("EMA_PERIODS", "5,10,30,60"), "Comma-separated EMA spans in minutes")
	slopePeriods := flag.String("slope-periods", envOr("SLOPE_PERIODS", "5,10,30,60"), "Comma-separated EMA-slope spans in minutes")
	znormWindow := flag.Int("znorm-window", envIntOr("ZNORM_WINDOW", 60), "Rolling window for z-score normalization in minutes")
	deadZone := flag.Float64("direction-dead-zone", envFloatOr("DIRECTION_DEAD_ZONE", domain.DefaultDirectionDeadZone), "Slope magnitude below which direction is flat")
	trainEnd := flag.String("train-end", os.Getenv("TRAIN_END"), "End of the training partition (RFC3339)")
	validationEnd := flag.String("validation-end", os.Getenv("VALIDATION_END"), "End of the validation partition (RFC3339)")
	testEnd := flag.String("test-end", os.Getenv("TEST_END"), "End of the test partition (RFC3339)")

	metricsAddr := flag.String("metrics-addr", envOr("METRICS_ADDR", ":9091"), "Prometheus metrics HTTP address (empty to disable)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := log.New(os.Stdout, "[prep] ", log.LstdFlags|log.Lshortfile)

	cfg, err := buildConfig(*predictionPeriods, *emaPeriods, *slopePeriods, *znormWindow, *deadZone, *trainEnd, *validationEnd, *testEnd)
	if err != nil {
		logger.Fatalf("Configuration: %v", err)
	}

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling prep run...", sig)
		cancel()
	}()

	stores, cleanup, err := createStores(ctx, logger, *barBackend, *datasetBackend, *outputDir, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Create stores: %v", err)
	}
	defer cleanup()

	orch := orchestrator.New(orchestrator.Options{
		BarStore:         stores.bars,
		DatasetStore:     stores.dataset,
		FeatureListStore: stores.featureList,
		Config:           cfg,
		Symbols:          splitList(*symbols),
		Logger:           logger,
		Metrics:          metrics,
		Verbose:          *verbose,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		logger.Fatalf("Run: %v", err)
	}

	for _, sr := range result.Symbols {
		logger.Printf("%s: loaded %d, dropped %d, train %d / validation %d / test %d, %d features",
			sr.Symbol, sr.RowsLoaded, sr.RowsDropped,
			sr.TrainRows, sr.ValidationRows, sr.TestRows, len(sr.Features))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Printf("Error: %s", e)
		}
		os.Exit(1)
	}

	logger.Println("Prep complete")
}

// prepStores holds the three stores the orchestrator needs.
type prepStores struct {
	bars        storage.BarStore
	dataset     storage.DatasetStore
	featureList storage.FeatureListStore
}

// createStores wires the configured backends. The feature list always lives
// next to the CSV output so downstream consumers find the column order there.
func createStores(ctx context.Context, logger *log.Logger, barBackend, datasetBackend, outputDir, postgresDSN, clickhouseDSN string) (*prepStores, func(), error) {
	stores := &prepStores{
		featureList: artifact.NewFeatureListStore(outputDir),
	}
	cleanup := func() {}

	switch barBackend {
	case "memory":
		stores.bars = memory.NewBarStore()
	case "postgres":
		if postgresDSN == "" {
			logger.Fatal("--postgres-dsn is required for the postgres backend")
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		stores.bars = pgstore.NewBarStore(pool)
		cleanup = pool.Close
	case "clickhouse":
		if clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required for the clickhouse backend")
		}
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			return nil, nil, err
		}
		stores.bars = chstore.NewBarStore(conn)
		if datasetBackend == "clickhouse" {
			stores.dataset = chstore.NewDatasetStore(conn)
		}
		cleanup = func() { _ = conn.Close() }
	default:
		logger.Fatalf("Unknown bar backend: %s", barBackend)
	}

	if stores.dataset == nil {
		switch datasetBackend {
		case "artifact":
			stores.dataset = artifact.NewDatasetStore(outputDir)
		case "clickhouse":
			conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			stores.dataset = chstore.NewDatasetStore(conn)
			prev := cleanup
			cleanup = func() {
				_ = conn.Close()
				prev()
			}
		default:
			logger.Fatalf("Unknown dataset backend: %s", datasetBackend)
		}
	}

	return stores, cleanup, nil
}

// buildConfig translates flag values into a PrepConfig. Full validation
// happens in the orchestrator; this only parses.
func buildConfig(prediction, ema, slope string, znormWindow int, deadZone float64, trainEnd, validationEnd, testEnd string) (domain.PrepConfig, error) {
	var cfg domain.PrepConfig
	var err error

	if cfg.PredictionPeriods, err = parseIntList(prediction); err != nil {
		return cfg, fmt.Errorf("parse prediction-periods: %w", err)
	}
	if cfg.EMAPeriods, err = parseIntList(ema); err != nil {
		return cfg, fmt.Errorf("parse ema-periods: %w", err)
	}
	if cfg.SlopePeriods, err = parseIntList(slope); err != nil {
		return cfg, fmt.Errorf("parse slope-periods: %w", err)
	}
	cfg.ZNormWindow = znormWindow
	cfg.DirectionDeadZone = deadZone

	if cfg.TrainEnd, err = parseTime(trainEnd, "train-end"); err != nil {
		return cfg, err
	}
	if cfg.ValidationEnd, err = parseTime(validationEnd, "validation-end"); err != nil {
		return cfg, err
	}
	if cfg.TestEnd, err = parseTime(testEnd, "test-end"); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func parseTime(s, name string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("--%s is required (RFC3339)", name)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return t, nil
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func serveMetrics(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	logger.Printf("Starting metrics server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
