package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Routes are the API handlers mounted by NewRouter. Nil handlers are
// skipped.
type Routes struct {
	ListCategories    http.HandlerFunc
	CategoryQuestions http.HandlerFunc
	ListQuestions     http.HandlerFunc
	GetQuestion       http.HandlerFunc
	CreateQuestion    http.HandlerFunc
	SearchQuestions   http.HandlerFunc
	UpdateQuestion    http.HandlerFunc
	DeleteQuestion    http.HandlerFunc
	DrawQuiz          http.HandlerFunc
	QuestionFeed      http.Handler
}

// Check is one dependency probed by /v1/ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Options carries the shared infrastructure the router needs.
type Options struct {
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Limiter  *RateLimiter
	Checks   []Check
}

// NewHTTPServer wires the API routes behind the standard middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, routes Routes, opts Options) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORS, logger, routes, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the mux and wraps it with CORS, request logging, panic
// recovery and metrics.
func NewRouter(cors config.CORS, logger zerolog.Logger, routes Routes, opts Options) http.Handler {
	mux := http.NewServeMux()
	limit := opts.Limiter.Limit

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, check := range opts.Checks {
			if err := check.Ping(ctx); err != nil {
				logging.FromContext(r.Context()).Error().Err(err).Str("dependency", check.Name).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, check.Name+" unavailable")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	handle(mux, "GET /categories", routes.ListCategories)
	handle(mux, "GET /categories/{id}/questions", routes.CategoryQuestions)
	handle(mux, "GET /questions", routes.ListQuestions)
	handle(mux, "POST /questions", limit(routes.CreateQuestion))
	handle(mux, "POST /questions/search", limit(routes.SearchQuestions))
	handle(mux, "GET /questions/{id}", routes.GetQuestion)
	handle(mux, "PATCH /questions/{id}", limit(routes.UpdateQuestion))
	handle(mux, "DELETE /questions/{id}", limit(routes.DeleteQuestion))
	handle(mux, "POST /quizzes", limit(routes.DrawQuiz))
	if routes.QuestionFeed != nil {
		mux.Handle("GET /ws/questions", routes.QuestionFeed)
	}

	// Method-less patterns are less specific than the ones above, so they
	// only catch requests whose method did not match. /questions/search is
	// left to /questions/{id}; registering it would conflict with
	// GET /questions/{id}.
	fallbacks := []string{
		"/healthz", "/v1/ping",
		"/categories", "/categories/{id}/questions",
		"/questions", "/questions/{id}", "/quizzes",
	}
	if opts.Gatherer != nil {
		fallbacks = append(fallbacks, "/metrics")
	}
	if routes.QuestionFeed != nil {
		fallbacks = append(fallbacks, "/ws/questions")
	}
	for _, path := range fallbacks {
		mux.HandleFunc(path, methodNotAllowed)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
	})

	var h http.Handler = mux
	h = instrument(opts.Metrics, h)
	h = recoverer(h)
	h = requestLogger(logger, h)
	h = corsHeaders(cors, h)
	return h
}

func handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	if h == nil {
		return
	}
	mux.HandleFunc(pattern, h)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httperrors.RespondMethodNotAllowed(w)
}
