package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"airbnb-cleaner/config"
	"airbnb-cleaner/models"
	"airbnb-cleaner/services"
	"airbnb-cleaner/storage"
	"airbnb-cleaner/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	runID := uuid.New()
	logger = utils.NewLoggerWithOptions(utils.LogOptions{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	}).With("run_id", runID.String())

	if err := run(cfg, runID, logger, os.Stdout); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, runID uuid.UUID, logger *utils.Logger, out io.Writer) error {
	logger.Info("=== Listings cleaning starting ===")
	logger.Info("Config: input %s | output %s | cutoff %s | pinned fence %t",
		cfg.InputPath, cfg.OutputPath, cfg.ScrapeCutoff, cfg.PinnedFence() != nil)

	var reader storage.TableReader = storage.NewCSVReader(cfg.InputPath)
	raw, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Info("Loaded %d raw listings with %d columns", raw.Len(), len(raw.Columns()))

	opts := services.Options{Cutoff: cfg.Cutoff(), PinnedFence: cfg.PinnedFence()}
	res, err := services.NewCleaner(logger, opts).Clean(raw)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	writers, err := openWriters(cfg, runID, logger)
	if err != nil {
		return err
	}
	if err := writeAll(res.Table, writers, cfg.MaxConcurrency, logger); err != nil {
		return err
	}

	summarizer := services.NewSummarizer(logger)
	summarizer.Print(out, summarizer.Generate(res))

	ranked, err := services.NewRanker(logger).Rank(res.Table, services.DefaultRoles(res.Table), cfg.TopPredictors)
	if err != nil {
		return fmt.Errorf("rank predictors: %w", err)
	}
	printRanking(out, ranked)
	if cfg.RankingOutputPath != "" {
		if err := writeRanking(cfg.RankingOutputPath, ranked); err != nil {
			return err
		}
		logger.Info("Predictor ranking written to %s", cfg.RankingOutputPath)
	}

	fmt.Fprintf(out, "  Done. Cleaned CSV → %s\n\n", cfg.OutputPath)
	return nil
}

type namedWriter struct {
	name string
	storage.TableWriter
}

func openWriters(cfg *config.Config, runID uuid.UUID, logger *utils.Logger) ([]namedWriter, error) {
	var writers []namedWriter
	closeAll := func() {
		for _, w := range writers {
			_ = w.Close()
		}
	}

	csvWriter, err := storage.NewCSVWriter(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("create CSV writer: %w", err)
	}
	writers = append(writers, namedWriter{"csv", csvWriter})

	if cfg.XLSXOutputPath != "" {
		xlsxWriter, err := storage.NewXLSXWriter(cfg.XLSXOutputPath)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("create XLSX writer: %w", err)
		}
		writers = append(writers, namedWriter{"xlsx", xlsxWriter})
	}

	if cfg.PostgresEnabled {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), runID, retry)
		if err != nil {
			closeAll()
			logger.Error("Make sure PostgreSQL is running: docker compose up -d")
			return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		writers = append(writers, namedWriter{"postgres", pgWriter})
	}
	return writers, nil
}

// writeAll hands the cleaned table to every writer concurrently and closes them.
func writeAll(t *models.Table, writers []namedWriter, concurrency int, logger *utils.Logger) error {
	pool := utils.NewWorkerPool(concurrency)
	for _, w := range writers {
		w := w
		pool.Submit(func() error {
			if err := w.Write(t); err != nil {
				return fmt.Errorf("%s write: %w", w.name, err)
			}
			logger.Info("Cleaned listings written (%s, %d rows)", w.name, t.Len())
			if pg, ok := w.TableWriter.(*storage.PostgresWriter); ok {
				n, err := pg.Count()
				if err != nil {
					return err
				}
				logger.Info("PostgreSQL table %s holds %d rows for this run", storage.TableName, n)
			}
			return nil
		})
	}
	writeErr := pool.Wait()

	for _, w := range writers {
		if err := w.Close(); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("%s close: %w", w.name, err)
		}
	}
	return writeErr
}

func writeRanking(path string, ranked []models.Correlation) error {
	t, err := services.RankingTable(ranked)
	if err != nil {
		return fmt.Errorf("ranking table: %w", err)
	}
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return fmt.Errorf("create ranking writer: %w", err)
	}
	if err := w.Write(t); err != nil {
		_ = w.Close()
		return fmt.Errorf("ranking write: %w", err)
	}
	return w.Close()
}

func printRanking(w io.Writer, ranked []models.Correlation) {
	fmt.Fprintf(w, "  Top predictors of price (Pearson r)\n")
	if len(ranked) == 0 {
		fmt.Fprintf(w, "  No numeric predictors\n\n")
		return
	}
	for i, c := range ranked {
		fmt.Fprintf(w, "  %2d. %-40s %+.3f (n=%d)\n", i+1, c.Column, c.Coefficient, c.Observations)
	}
	fmt.Fprintln(w)
}
