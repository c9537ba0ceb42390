package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/lob-response/internal/metrics"
	"github.com/rickgao/lob-response/internal/response"
)

// RunnerConfig holds parallel-map settings.
type RunnerConfig struct {
	Workers int
	MaxLag  int
}

// Runner maps day passes over (ticker, day) pairs in parallel and reduces
// the per-day responses into one aggregate per ticker.
type Runner struct {
	cfg     RunnerConfig
	pass    *Pass
	results *Buffer[DayResult] // nil when persistence is disabled
	logger  *slog.Logger

	mu         sync.Mutex
	aggregates map[string]*response.Aggregate
	failed     int
}

// NewRunner creates a Runner. results may be nil; successful day results
// are then not forwarded anywhere.
func NewRunner(cfg RunnerConfig, pass *Pass, results *Buffer[DayResult], logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		pass:       pass,
		results:    results,
		logger:     logger,
		aggregates: make(map[string]*response.Aggregate),
	}
}

// Run executes every (ticker, day) pass and returns the per-ticker
// aggregates. A failed day contributes an all-zero response and does not
// stop the remaining days; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, tickers, days []string) (map[string]*response.Aggregate, error) {
	for _, ticker := range tickers {
		r.aggregates[ticker] = response.NewAggregate(r.cfg.MaxLag)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for _, ticker := range tickers {
		for _, day := range days {
			ticker, day := ticker, day
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				r.runDay(ticker, day)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("run complete",
		"tickers", len(tickers),
		"days", len(days),
		"failed_passes", r.failed,
	)
	return r.aggregates, nil
}

// FailedPasses returns how many passes produced no data.
func (r *Runner) FailedPasses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

func (r *Runner) runDay(ticker, day string) {
	start := time.Now()
	result, err := r.pass.Run(ticker, day)
	metrics.PassDuration.Observe(time.Since(start).Seconds())

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		// "No evidence", not "negative evidence": the day stays in the
		// denominator as zeros.
		r.logger.Warn("day pass failed", "ticker", ticker, "day", day, "error", err)
		metrics.PassesTotal.WithLabelValues(ticker, "failed").Inc()
		_ = r.aggregates[ticker].Add(response.Zero(r.cfg.MaxLag))
		r.failed++
		return
	}

	metrics.PassesTotal.WithLabelValues(ticker, "ok").Inc()
	if addErr := r.aggregates[ticker].Add(result.Response); addErr != nil {
		r.logger.Error("aggregate rejected day", "ticker", ticker, "day", day, "error", addErr)
		return
	}
	if r.results != nil {
		r.results.Send(result)
	}
}
