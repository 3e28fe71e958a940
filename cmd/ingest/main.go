// Package main provides the raw minute-bar ingestion entry point.
// Reads per-year ASCII bar files and loads them into the bar store.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/ingestion"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/observability"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
	chstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/clickhouse"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/memory"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/migrations"
	pgstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/postgres"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dataDir := flag.String("data-dir", envOr("DATA_DIR", "data/raw"), "Directory containing DAT_ASCII_<SYMBOL>_M1_<YEAR>.csv files")
	symbols := flag.String("symbols", envOr("SYMBOLS", "EURUSD"), "Comma-separated symbols to ingest")
	backend := flag.String("backend", envOr("STORAGE_BACKEND", "memory"), "Bar storage backend: memory, postgres, or clickhouse")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	metricsAddr := flag.String("metrics-addr", envOr("METRICS_ADDR", ":9090"), "Prometheus metrics HTTP address (empty to disable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags|log.Lshortfile)

	symbolList := splitList(*symbols)
	if len(symbolList) == 0 {
		logger.Fatal("No symbols specified. Use --symbols")
	}

	metrics := observability.NewMetrics("")

	if *metricsAddr != "" {
		go serveMetrics(logger, *metricsAddr)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling ingestion...", sig)
		cancel()
	}()

	barStore, cleanup, err := createBarStore(ctx, logger, *backend, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Create bar store: %v", err)
	}
	defer cleanup()

	runner := ingestion.NewRunner(barStore, logger, metrics)

	for _, symbol := range symbolList {
		start := time.Now()
		result, err := runner.IngestDir(ctx, *dataDir, symbol)
		if err != nil {
			logger.Fatalf("Ingest %s: %v", symbol, err)
		}
		logger.Printf("%s: %d files, %d bars parsed, %d duplicates dropped, %d stored in %v",
			symbol, result.Files, result.BarsParsed, result.BarsDeduped, result.BarsStored,
			time.Since(start).Round(time.Millisecond))
	}

	logger.Println("Ingestion complete")
}

// createBarStore selects and bootstraps the configured storage backend.
func createBarStore(ctx context.Context, logger *log.Logger, backend, postgresDSN, clickhouseDSN string) (storage.BarStore, func(), error) {
	switch backend {
	case "memory":
		return memory.NewBarStore(), func() {}, nil

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
		return pgstore.NewBarStore(pool), pool.Close, nil

	case "clickhouse":
		if clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required for the clickhouse backend")
		}
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			return nil, nil, err
		}
		return chstore.NewBarStore(conn), func() { _ = conn.Close() }, nil

	default:
		logger.Fatalf("Unknown backend: %s", backend)
		return nil, nil, nil
	}
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
