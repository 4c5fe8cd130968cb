// Package main bulk-loads articles from a CSV or XLSX file into an empty store.
// Usage: sports-import [--config FILE] <file.csv|file.xlsx>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sports-articles/internal/config"
	"sports-articles/internal/infra/adapter/persistence"
	infradb "sports-articles/internal/infra/db"
	"sports-articles/internal/infra/tabular"
	"sports-articles/internal/observability/logging"
	"sports-articles/internal/usecase/importer"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "Path to YAML configuration file")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one input file is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: sports-import [--config FILE] <file.csv|file.xlsx>")
		os.Exit(2)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Log.Options())
	slog.SetDefault(logger)
	for _, w := range warnings {
		logger.Warn("configuration warning", slog.String("warning", w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, args[0], logger); err != nil {
		if errors.Is(err, importer.ErrStoreNotEmpty) {
			logger.Info("nothing imported", slog.String("reason", err.Error()))
			fmt.Println("Database already contains articles. To re-import, clear the database first.")
			return
		}
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	rows, err := tabular.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Info("rows read", slog.String("file", path), slog.Int("rows", len(rows)))

	database, err := infradb.Open(ctx, cfg.DBConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := infradb.MigrateUp(ctx, database, infradb.Dialect(cfg.Database.Driver)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repo, err := persistence.NewArticleRepo(infradb.Dialect(cfg.Database.Driver), database)
	if err != nil {
		return err
	}

	report, err := (&importer.Importer{Repo: repo, Logger: logger}).Import(ctx, rows)
	if report != nil {
		fmt.Printf("Imported %d, skipped %d, failed %d\n", report.Imported, report.Skipped, report.Failed)
		for _, rowErr := range report.Errors {
			fmt.Println("  " + rowErr.String())
		}
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d rows could not be stored", report.Failed)
	}
	return nil
}
