// Package stats keeps the per-category question gauges current.
package stats

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

type countSource interface {
	Counts(ctx context.Context) ([]repository.CategoryCount, error)
}

// CategoryWorker periodically copies question counts into prometheus.
type CategoryWorker struct {
	source   countSource
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	interval time.Duration
}

func NewCategoryWorker(source countSource, m *metrics.Metrics, interval time.Duration, logger zerolog.Logger) *CategoryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CategoryWorker{
		source:   source,
		metrics:  m,
		logger:   logger.With().Str("component", "category_stats_worker").Logger(),
		interval: interval,
	}
}

// Run blocks until context cancellation.
func (w *CategoryWorker) Run(ctx context.Context) error {
	if w.source == nil || w.metrics == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CategoryWorker) tick(ctx context.Context) {
	if err := w.refresh(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("category count refresh failed")
	}
}

func (w *CategoryWorker) refresh(ctx context.Context) error {
	counts, err := w.source.Counts(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, c := range counts {
		w.metrics.QuestionsByCategory.WithLabelValues(c.Category.Type).Set(float64(c.Count))
		total += c.Count
	}

	w.logger.Debug().
		Int("categories", len(counts)).
		Int("questions", total).
		Msg("category counts refreshed")
	return nil
}
