package store

import "time"

// Series kinds persisted to second_series.
const (
	SeriesMidpoint  = "midpoint"
	SeriesTradeSign = "trade_sign"
)

// WriterConfig holds batch writer settings.
type WriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     5000,
		FlushInterval: time.Second,
	}
}

// secondSeriesRow is one grid second of one derived series.
type secondSeriesRow struct {
	Ticker     string
	TradingDay string
	Kind       string
	Second     int64
	Value      float64
}

// responseCurveRow is one lag of one aggregated response curve.
type responseCurveRow struct {
	Ticker   string
	Span     string
	Lag      int
	Response float64
	Samples  int64
}
