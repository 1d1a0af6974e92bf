// Command cleanup-sessions deletes expired browser sessions and their CSRF
// token hashes. It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/adapter/postgres"
	"github.com/schulanmeldung/regform-backend/internal/adapter/postgres/session"
	"github.com/schulanmeldung/regform-backend/internal/app"
	"github.com/schulanmeldung/regform-backend/internal/config"
	"github.com/schulanmeldung/regform-backend/internal/service/csrf"
)

func main() {
	cfg, err := config.LoadJob()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closeLog, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := csrf.NewService(logger, session.New(pool), cfg.Session.Lifetime)

	deleted, err := svc.CleanupExpired(ctx)
	if err != nil {
		logger.Error("session cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("session cleanup completed", slog.Int("deleted", deleted))
}
