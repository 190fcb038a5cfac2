package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/store"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/stats"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	statsWorker *stats.CategoryWorker
	bgCancels   []context.CancelFunc
}

// New bootstraps logger, Postgres, Redis, services and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	queries := store.New(pool)
	questionRepo := repository.NewQuestionRepository(queries)
	categoryRepo := repository.NewCategoryRepository(queries)

	hub := ws.NewHub(logger)

	questionSvc := question.NewService(
		questionRepo,
		categoryRepo,
		hub,
		question.ServiceOptions{PageSize: cfg.Pagination.PageSize},
		logger,
	)
	categorySvc := category.NewService(categoryRepo)
	sessions := quiz.NewSessionStore(redisClient, cfg.Quiz.SessionTTL, logger)
	quizSvc := quiz.NewService(questionRepo, sessions, trivia.NewSelector(nil), m, logger)

	questionHTTP := question.NewHTTPHandlers(questionSvc, logger)
	categoryHTTP := category.NewHTTPHandlers(categorySvc, logger)
	quizHTTP := quiz.NewHTTPHandlers(quizSvc, logger)

	routes := server.Routes{
		ListCategories:    categoryHTTP.List,
		CategoryQuestions: questionHTTP.ByCategory,
		ListQuestions:     questionHTTP.List,
		GetQuestion:       questionHTTP.Get,
		CreateQuestion:    questionHTTP.Create,
		SearchQuestions:   questionHTTP.Search,
		UpdateQuestion:    questionHTTP.Update,
		DeleteQuestion:    questionHTTP.Delete,
		DrawQuiz:          quizHTTP.Draw,
		QuestionFeed:      ws.NewFeedHandler(hub, logger),
	}

	apiServer := server.NewHTTPServer(cfg, logger, routes, server.Options{
		Metrics:  m,
		Gatherer: registry,
		Limiter:  server.NewRateLimiter(redisClient, cfg.RateLimit, m, logger),
		Checks: []server.Check{
			{Name: "postgres", Ping: pool.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		},
	})

	var statsWorker *stats.CategoryWorker
	if cfg.Stats.RefreshInterval > 0 {
		statsWorker = stats.NewCategoryWorker(categoryRepo, m, cfg.Stats.RefreshInterval, logger)
	}

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		statsWorker: statsWorker,
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.shutdownBackground()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.shutdownBackground()

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) shutdownBackground() {
	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.statsWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.statsWorker.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("category stats worker stopped")
			}
		}()
	}
}
