// Command cleanup physically removes submissions that were soft-deleted
// longer ago than the retention period (HARD_DELETE_RETENTION_DAYS, or
// -days). Attachment rows go with them; when object storage is configured
// their stored files are removed from the bucket first. It is meant to run
// from an external cron job.
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/adapter/postgres"
	"github.com/schulanmeldung/regform-backend/internal/adapter/postgres/submission"
	"github.com/schulanmeldung/regform-backend/internal/adapter/storage"
	"github.com/schulanmeldung/regform-backend/internal/app"
	"github.com/schulanmeldung/regform-backend/internal/config"
)

func main() {
	days := flag.Int("days", -1, "retention in days; overrides HARD_DELETE_RETENTION_DAYS")
	dryRun := flag.Bool("dry-run", false, "report how many rows would be removed without deleting")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.LoadJob()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *days >= 0 {
		cfg.Retention.HardDeleteAfterDays = *days
	}

	logger, closeLog, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer closeLog() //nolint:errcheck

	if err := run(cfg, logger, *dryRun, *timeout); err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		closeLog() //nolint:errcheck
		os.Exit(1)
	}
}

func run(cfg *config.JobConfig, logger *slog.Logger, dryRun bool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := submission.New(pool)
	threshold := time.Now().AddDate(0, 0, -cfg.Retention.HardDeleteAfterDays)
	logger = logger.With(
		slog.Time("threshold", threshold),
		slog.Int("retention_days", cfg.Retention.HardDeleteAfterDays),
	)

	keys, err := repo.ObjectKeysDeletedBefore(ctx, threshold)
	if err != nil {
		return err
	}

	if dryRun {
		n, err := repo.CountDeletedBefore(ctx, threshold)
		if err != nil {
			return err
		}
		logger.Info("dry run: submissions eligible for hard delete",
			slog.Int64("count", n),
			slog.Int("objects", len(keys)),
		)
		return nil
	}

	if len(keys) > 0 {
		if !cfg.Storage.Enabled() {
			logger.Warn("storage not configured, stored files are kept", slog.Int("objects", len(keys)))
		} else {
			up, err := storage.NewUploader(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			removeObjects(ctx, logger, up, keys)
		}
	}

	deleted, err := repo.HardDeleteOld(ctx, threshold)
	if err != nil {
		return err
	}
	logger.Info("hard delete completed", slog.Int64("deleted", deleted))
	return nil
}

type objectRemover interface {
	Delete(ctx context.Context, key string) error
}

// removeObjects deletes each key, logging failures without stopping.
func removeObjects(ctx context.Context, logger *slog.Logger, r objectRemover, keys []string) int {
	removed := 0
	for _, k := range keys {
		if err := r.Delete(ctx, k); err != nil {
			logger.Warn("remove stored file", slog.String("object_key", k), slog.String("error", err.Error()))
			continue
		}
		removed++
	}
	logger.Info("stored files removed", slog.Int("removed", removed), slog.Int("failed", len(keys)-removed))
	return removed
}
