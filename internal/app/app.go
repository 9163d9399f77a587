package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/quizforge/quizmod-backend/internal/adapter/knowledge"
	"github.com/quizforge/quizmod-backend/internal/adapter/llm"
	"github.com/quizforge/quizmod-backend/internal/adapter/postgres"
	feedbackpg "github.com/quizforge/quizmod-backend/internal/adapter/postgres/feedback"
	"github.com/quizforge/quizmod-backend/internal/adapter/postgres/reviewqueue"
	"github.com/quizforge/quizmod-backend/internal/auth"
	"github.com/quizforge/quizmod-backend/internal/config"
	"github.com/quizforge/quizmod-backend/internal/service/intake"
	"github.com/quizforge/quizmod-backend/internal/service/remediation"
	"github.com/quizforge/quizmod-backend/internal/service/review"
	"github.com/quizforge/quizmod-backend/internal/transport/middleware"
	"github.com/quizforge/quizmod-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// Postgres and the knowledge base, wires the services and serves HTTP until
// the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	knowledgeStore, err := knowledge.New(cfg.Knowledge, logger)
	if err != nil {
		return fmt.Errorf("create knowledge store: %w", err)
	}
	if err := knowledgeStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure knowledge schema: %w", err)
	}

	llmClient := llm.New(cfg.LLM, logger)

	feedbackRepo := feedbackpg.New(pool)
	queueRepo := reviewqueue.New(pool)
	txManager := postgres.NewTxManager(pool)

	remediationSvc := remediation.NewService(logger, llmClient, knowledgeStore)
	intakeSvc := intake.NewService(logger, cfg.Moderation, feedbackRepo, queueRepo, llmClient, remediationSvc)
	reviewSvc := review.NewService(logger, cfg.Moderation, queueRepo, feedbackRepo, remediationSvc, txManager)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := newRouter(routerDeps{
		cfg:       cfg,
		log:       logger,
		pool:      pool,
		jwt:       jwtManager,
		limiter:   limiter,
		intake:    intakeSvc,
		review:    reviewSvc,
		knowledge: knowledgeStore,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// migrate applies the embedded goose migrations. goose requires *sql.DB, so
// the pgx pool is bridged through the stdlib adapter.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close migration connection", slog.String("error", err.Error()))
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	if len(results) > 0 {
		logger.Info("migrations applied", slog.Int("count", len(results)))
	}

	return nil
}
