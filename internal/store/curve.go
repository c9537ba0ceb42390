package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/lob-response/internal/metrics"
	"github.com/rickgao/lob-response/internal/response"
)

// CurveWriter persists aggregated response curves.
type CurveWriter struct {
	db     *pgxpool.Pool
	runID  uuid.UUID
	logger *slog.Logger
}

// NewCurveWriter creates a CurveWriter tagging rows with runID.
func NewCurveWriter(db *pgxpool.Pool, runID uuid.UUID, logger *slog.Logger) *CurveWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurveWriter{db: db, runID: runID, logger: logger}
}

// WriteCurve stores one ticker's aggregated response curve. span labels the
// aggregation window, e.g. "2008-01-02..2008-01-08".
func (w *CurveWriter) WriteCurve(ctx context.Context, ticker, span string, agg *response.Aggregate) error {
	resp := agg.Response()
	samples := agg.Samples()

	rows := make([]responseCurveRow, len(resp))
	for lag := range resp {
		rows[lag] = responseCurveRow{
			Ticker:   ticker,
			Span:     span,
			Lag:      lag,
			Response: resp[lag],
			Samples:  samples[lag],
		}
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO response_curves (ticker, span, lag, response, samples, run_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (ticker, span, lag) DO NOTHING
		`, r.Ticker, r.Span, r.Lag, r.Response, r.Samples, w.runID)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return fmt.Errorf("insert response curve %s %s: %w", ticker, span, err)
		}
		inserted += int(ct.RowsAffected())
	}

	metrics.StoreRowsTotal.WithLabelValues("response_curves").Add(float64(inserted))
	w.logger.Info("response curve stored",
		"ticker", ticker,
		"span", span,
		"lags", len(rows),
		"inserted", inserted,
	)
	return nil
}
