package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schulanmeldung/regform-backend/internal/adapter/mailer"
	"github.com/schulanmeldung/regform-backend/internal/adapter/pdf"
	"github.com/schulanmeldung/regform-backend/internal/adapter/postgres"
	sessionrepo "github.com/schulanmeldung/regform-backend/internal/adapter/postgres/session"
	submissionrepo "github.com/schulanmeldung/regform-backend/internal/adapter/postgres/submission"
	"github.com/schulanmeldung/regform-backend/internal/adapter/storage"
	"github.com/schulanmeldung/regform-backend/internal/auth"
	"github.com/schulanmeldung/regform-backend/internal/config"
	"github.com/schulanmeldung/regform-backend/internal/forms"
	"github.com/schulanmeldung/regform-backend/internal/i18n"
	"github.com/schulanmeldung/regform-backend/internal/service/csrf"
	"github.com/schulanmeldung/regform-backend/internal/service/document"
	"github.com/schulanmeldung/regform-backend/internal/service/notification"
	"github.com/schulanmeldung/regform-backend/internal/service/submission"
	"github.com/schulanmeldung/regform-backend/internal/transport/middleware"
	"github.com/schulanmeldung/regform-backend/internal/transport/rest"
	"github.com/schulanmeldung/regform-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled or
// SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("env", cfg.App.Env),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		n, err := postgres.Migrate(ctx, pool, migrations.FS)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.Int("count", n))
	}

	handler, cleanup, err := buildHandler(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("graceful shutdown started")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("graceful shutdown completed")
	return nil
}

// buildHandler wires repositories, services and transport. The returned
// cleanup stops background workers.
func buildHandler(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, func(), error) {
	registry, err := forms.Load(cfg.Forms.Path)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := i18n.Load()
	if err != nil {
		return nil, nil, err
	}

	loc, err := time.LoadLocation(cfg.PDF.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf timezone %q: %w", cfg.PDF.Timezone, err)
	}

	// Repositories
	subs := submissionrepo.New(pool)
	sessions := sessionrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	tokens := auth.NewDownloadTokens(cfg.PDF.TokenSecret, cfg.PDF.TokenIssuer, cfg.PDF.TokenTTL)

	// Services
	var notifier *notification.Service
	notifyCfg := notification.Config{
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
		To:       cfg.Mail.Recipients(),
		Language: catalog.Resolve(cfg.Mail.Language),
	}
	if cfg.Mail.Enabled() {
		notifier = notification.NewService(logger, mailer.New(cfg.Mail), catalog, notifyCfg)
	} else {
		logger.Warn("mail disabled: no SMTP host configured")
		notifier = notification.NewService(logger, nil, catalog, notifyCfg)
	}

	submissions := submission.NewService(logger, subs, tx, registry, tokens, notifier)
	if cfg.Storage.Enabled() {
		uploader, err := storage.NewUploader(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		submissions.SetUploader(uploader)
		logger.Info("upload relay enabled", slog.String("bucket", cfg.Storage.Bucket))
	}

	csrfSvc := csrf.NewService(logger, sessions, cfg.Session.Lifetime)
	docs := document.NewService(logger, tokens, subs, registry,
		pdf.NewRenderer(cfg.PDF.Compress, loc), catalog, catalog.Resolve(cfg.PDF.Language))

	// Transport
	limiter := middleware.NewRateLimiter(middleware.RateLimiterOptions{
		CleanupInterval: 5 * time.Minute,
		TrustProxy:      cfg.Intake.TrustProxy,
	})
	admin := auth.NewAdminSecret(cfg.Admin.TokenHash)

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(pool, registry, BuildVersion()),
		Messages: rest.NewMessagesHandler(catalog),
		Forms:    rest.NewFormsHandler(registry, logger),
		PDF:      rest.NewPDFHandler(docs, catalog, logger),
		CSRF:     rest.NewCSRFHandler(csrfSvc, logger),
		Submissions: rest.NewSubmissionHandler(submissions, csrfSvc, rest.IntakeConfig{
			MaxBodyBytes: cfg.Intake.MaxBodyBytes,
			RequireCSRF:  cfg.Intake.RequireCSRF,
			PDFBaseURL:   cfg.App.BaseURL,
		}, logger),
	}

	routerCfg := rest.RouterConfig{
		CORS:               cfg.CORS,
		Session:            cfg.Session,
		RateLimitPerMinute: cfg.Intake.RateLimitPerMinute,
		Limiter:            limiter,
	}
	if admin.Enabled() {
		handlers.Admin = rest.NewAdminHandler(submissions, cfg.App.BaseURL, logger)
		routerCfg.AdminChecker = admin
	} else {
		logger.Info("admin endpoints disabled: no admin token hash configured")
	}

	return rest.NewRouter(handlers, routerCfg, logger), limiter.Stop, nil
}
