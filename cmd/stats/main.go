// Package main provides the data-understanding report entry point.
// Renders descriptive statistics and feed findings as markdown.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/ingestion"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/stats"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
	chstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/clickhouse"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/memory"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage/migrations"
	pgstore "github.com/piinutbutter/dataScienceProjektGr3/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	symbol := flag.String("symbol", envOr("SYMBOL", "EURUSD"), "Symbol to report on")
	dataDir := flag.String("data-dir", "", "Read raw ASCII files from this directory instead of a database")
	backend := flag.String("backend", envOr("STORAGE_BACKEND", "postgres"), "Bar storage backend: postgres or clickhouse")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	output := flag.String("output", "", "Output file for the markdown report (default stdout)")
	flag.Parse()

	logger := log.New(os.Stderr, "[stats] ", log.LstdFlags)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	bars, err := loadBars(ctx, logger, *symbol, *dataDir, *backend, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Load bars: %v", err)
	}
	if len(bars) == 0 {
		logger.Fatalf("No bars found for %s", *symbol)
	}

	derefBars := make([]domain.Bar, len(bars))
	for i, b := range bars {
		derefBars[i] = *b
	}
	frame := dataset.FromBars(*symbol, derefBars)

	report := stats.Build(frame)
	md := report.RenderMarkdown()

	if *output == "" {
		os.Stdout.WriteString(md)
		return
	}
	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		logger.Fatalf("Create output directory: %v", err)
	}
	if err := os.WriteFile(*output, []byte(md), 0o644); err != nil {
		logger.Fatalf("Write report: %v", err)
	}
	logger.Printf("Report written to %s", *output)
}

// loadBars sources the symbol's bars either from raw ASCII files or from the
// configured storage backend.
func loadBars(ctx context.Context, logger *log.Logger, symbol, dataDir, backend, postgresDSN, clickhouseDSN string) ([]*domain.Bar, error) {
	if dataDir != "" {
		store := memory.NewBarStore()
		runner := ingestion.NewRunner(store, logger, nil)
		if _, err := runner.IngestDir(ctx, dataDir, symbol); err != nil {
			return nil, err
		}
		return store.GetBySymbol(ctx, symbol)
	}

	var barStore storage.BarStore
	switch backend {
	case "postgres":
		if postgresDSN == "" {
			logger.Fatal("--postgres-dsn is required for the postgres backend")
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		barStore = pgstore.NewBarStore(pool)
	case "clickhouse":
		if clickhouseDSN == "" {
			logger.Fatal("--clickhouse-dsn is required for the clickhouse backend")
		}
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		barStore = chstore.NewBarStore(conn)
	default:
		logger.Fatalf("Unknown backend: %s", backend)
	}

	return barStore.GetBySymbol(ctx, symbol)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
