package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/lob-response/internal/metrics"
	"github.com/rickgao/lob-response/internal/pipeline"
)

// ResultWriter consumes DayResult from the pipeline buffer and writes the
// per-second series to the second_series table.
type ResultWriter struct {
	cfg    WriterConfig
	logger *slog.Logger
	runID  uuid.UUID

	// Input from the pipeline runner
	input *pipeline.Buffer[pipeline.DayResult]

	// Database
	db *pgxpool.Pool

	// Batching
	batch       []secondSeriesRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	stats ResultWriterStats
}

// ResultWriterStats tracks writer activity.
type ResultWriterStats struct {
	DaysConsumed int64
	RowsInserted int64
	Conflicts    int64
	Errors       int64
	Flushes      int64
}

// NewResultWriter creates a ResultWriter. Every row written by this writer
// carries runID.
func NewResultWriter(
	cfg WriterConfig,
	input *pipeline.Buffer[pipeline.DayResult],
	db *pgxpool.Pool,
	runID uuid.UUID,
	logger *slog.Logger,
) *ResultWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultWriter{
		cfg:    cfg,
		input:  input,
		db:     db,
		runID:  runID,
		logger: logger,
		batch:  make([]secondSeriesRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming day results and writing to the database.
func (w *ResultWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("result writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
		"run_id", w.runID,
	)
	return nil
}

// Stop gracefully shuts down the writer and flushes remaining rows.
func (w *ResultWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping result writer")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("result writer stopped")
	case <-ctx.Done():
		w.logger.Warn("result writer stop timed out")
	}

	// Drain anything still buffered so a completed run never drops rows,
	// then flush on the caller's context; w.ctx is already cancelled.
	for {
		result, ok := w.input.TryReceive()
		if !ok {
			break
		}
		w.appendRows(transformResult(result))
	}
	w.flush(ctx)
	return nil
}

// Stats returns current writer statistics.
func (w *ResultWriter) Stats() ResultWriterStats {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.stats
}

// consumeLoop drains the input buffer into the row batch.
func (w *ResultWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			result, ok := w.input.TryReceive()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}
			w.handleResult(result)
		}
	}
}

// flushLoop periodically flushes the batch.
func (w *ResultWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush(w.ctx)
		}
	}
}

// handleResult expands one day result into series rows.
func (w *ResultWriter) handleResult(result pipeline.DayResult) {
	if w.appendRows(transformResult(result)) {
		w.flush(w.ctx)
	}
}

// appendRows adds rows to the pending batch and reports whether the batch
// is due for a flush.
func (w *ResultWriter) appendRows(rows []secondSeriesRow) bool {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	w.batch = append(w.batch, rows...)
	w.stats.DaysConsumed++
	return len(w.batch) >= w.cfg.BatchSize
}

// transformResult converts a DayResult into second_series rows, one per
// grid second per series kind.
func transformResult(result pipeline.DayResult) []secondSeriesRow {
	mid, sgn := result.Midpoint, result.TradeSign
	rows := make([]secondSeriesRow, 0, mid.Len()+sgn.Len())
	for i, v := range mid.Values {
		rows = append(rows, secondSeriesRow{
			Ticker:     result.Ticker,
			TradingDay: result.Day,
			Kind:       SeriesMidpoint,
			Second:     mid.Open + int64(i),
			Value:      v,
		})
	}
	for i, v := range sgn.Values {
		rows = append(rows, secondSeriesRow{
			Ticker:     result.Ticker,
			TradingDay: result.Day,
			Kind:       SeriesTradeSign,
			Second:     sgn.Open + int64(i),
			Value:      v,
		})
	}
	return rows
}

// flush writes the pending batch to the database.
func (w *ResultWriter) flush(ctx context.Context) {
	w.batchMu.Lock()
	batch := w.batch
	w.batch = make([]secondSeriesRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	if len(batch) == 0 {
		return
	}

	start := time.Now()
	conflicts, err := w.insertRows(ctx, batch)

	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	if err != nil {
		w.logger.Error("series batch insert failed", "error", err, "count", len(batch))
		w.stats.Errors++
		metrics.StoreErrorsTotal.Inc()
		return
	}
	w.stats.RowsInserted += int64(len(batch) - conflicts)
	w.stats.Conflicts += int64(conflicts)
	w.stats.Flushes++
	metrics.StoreRowsTotal.WithLabelValues("second_series").Add(float64(len(batch) - conflicts))

	w.logger.Debug("flushed series rows",
		"rows", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// insertRows inserts rows with ON CONFLICT DO NOTHING.
func (w *ResultWriter) insertRows(ctx context.Context, rows []secondSeriesRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO second_series (ticker, trading_day, kind, second, value, run_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (ticker, trading_day, kind, second) DO NOTHING
		`, r.Ticker, r.TradingDay, r.Kind, r.Second, r.Value, w.runID)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}
	return conflicts, nil
}
