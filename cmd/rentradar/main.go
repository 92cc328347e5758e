package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/rentradar/rentradar/internal/analysis"
	"github.com/rentradar/rentradar/internal/api"
	"github.com/rentradar/rentradar/internal/config"
	"github.com/rentradar/rentradar/internal/database"
	"github.com/rentradar/rentradar/internal/export"
	"github.com/rentradar/rentradar/internal/listing"
	"github.com/rentradar/rentradar/internal/portfolio"
	"github.com/rentradar/rentradar/internal/rent"
	"github.com/rentradar/rentradar/internal/score"
	"github.com/rentradar/rentradar/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	app := &cli.App{
		Name:  "rentradar",
		Usage: "rental property investment analysis",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the API server with background workers",
				Action: runServe,
			},
			{
				Name:   "export",
				Usage:  "export the latest saved analysis and exit",
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connectDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// buildWriters assembles the configured report destinations. The XLSX
// writer is always available; Sheets requires credentials.
func buildWriters(ctx context.Context, cfg config.Config) []export.ReportWriter {
	writers := []export.ReportWriter{export.NewXLSXWriter(cfg.XLSXOutputPath)}

	if cfg.SheetsCredentialsJSON != "" && cfg.SheetsSpreadsheetID != "" {
		sheetsWriter, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			slog.Error("failed to create sheets writer, continuing without it", "error", err)
		} else {
			writers = append(writers, sheetsWriter)
		}
	}
	return writers
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Listing pipeline
	provider := listing.NewClient(cfg.ProviderURL, cfg.ProviderAPIKey,
		cfg.ProviderRetryMax, cfg.ProviderRetryBaseDelay, cfg.ProviderRatePerSecond)
	cache := listing.NewMemoryCache(cfg.SearchCacheTTL)
	estimator := rent.NewEstimator(cfg.RentFallbackPercent)
	listingSvc := listing.NewService(provider, cache, estimator, cfg.SearchLimit)

	queue := listing.NewQueue(cfg.QueueWorkers, func(ctx context.Context, location string) {
		if _, err := listingSvc.Refresh(ctx, location); err != nil {
			slog.Error("background refresh failed", "location", location, "error", err)
		}
	})
	go queue.Run(ctx)

	refreshWorker := worker.NewRefreshWorker(listingSvc, queue, cfg.RefreshWorkerInterval)
	go refreshWorker.Run(ctx)

	// Analysis engine
	scorer := score.NewService()
	portfolioSvc := portfolio.NewService(scorer)

	// Saved analyses need a database; without one the CRUD endpoints
	// respond 503 and the report worker stays off.
	var analysisSvc *analysis.Service
	if cfg.DatabaseURL != "" {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}
		defer pool.Close()
		analysisSvc = analysis.NewService(analysis.NewPgRepository(pool))

		exportSvc := export.NewService(analysisSvc, portfolioSvc, scorer, buildWriters(ctx, cfg)...)
		reportWorker := worker.NewReportWorker(exportSvc, cfg.ReportWorkerInterval)
		go reportWorker.Run(ctx)
	} else {
		slog.Warn("DATABASE_URL not set, saved analyses and reports disabled")
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, mutating endpoints are unprotected")
	}

	var analyses api.Analyses
	if analysisSvc != nil {
		analyses = analysisSvc
	}
	handler := api.NewHandler(listingSvc, queue, portfolioSvc, scorer, analyses)
	srv := api.NewServer(cfg.HTTPPort, handler, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for export")
	}

	pool, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	defer pool.Close()

	scorer := score.NewService()
	analysisSvc := analysis.NewService(analysis.NewPgRepository(pool))
	exportSvc := export.NewService(analysisSvc, portfolio.NewService(scorer), scorer, buildWriters(ctx, cfg)...)

	if err := exportSvc.ExportLatest(ctx); err != nil {
		return fmt.Errorf("exporting latest analysis: %w", err)
	}
	log.Println("Export complete")
	return nil
}
