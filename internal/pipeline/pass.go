package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/rickgao/lob-response/internal/book"
	"github.com/rickgao/lob-response/internal/model"
	"github.com/rickgao/lob-response/internal/resample"
	"github.com/rickgao/lob-response/internal/response"
	"github.com/rickgao/lob-response/internal/sign"
	"github.com/rickgao/lob-response/internal/source"
)

// PassConfig holds the time bounds and lag bank for day passes.
type PassConfig struct {
	WindowOpenSecond  int64 // analysis grid start (inclusive)
	WindowCloseSecond int64 // analysis grid end (exclusive)
	MaxLag            int
}

// DayResult is the output of one successful (ticker, day) pass.
type DayResult struct {
	Ticker    string
	Day       string
	Midpoint  model.FixedGridSeries
	TradeSign model.FixedGridSeries
	Response  response.DayResponse
}

// Pass runs the full reconstruction-classification-resample-response chain
// for single instrument-days.
type Pass struct {
	cfg        PassConfig
	src        source.Source
	engine     *book.Engine
	classifier sign.Classifier
	logger     *slog.Logger
}

// NewPass wires a day pass from its collaborators.
func NewPass(cfg PassConfig, src source.Source, engine *book.Engine, classifier sign.Classifier, logger *slog.Logger) *Pass {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pass{
		cfg:        cfg,
		src:        src,
		engine:     engine,
		classifier: classifier,
		logger:     logger,
	}
}

// Run executes the pass for one (ticker, day). Any error means the day
// produced no output at all; partial results are never returned.
func (p *Pass) Run(ticker, day string) (DayResult, error) {
	events, err := p.src.Events(ticker, day)
	if err != nil {
		return DayResult{}, err
	}

	changes, err := p.engine.Reconstruct(events)
	if err != nil {
		return DayResult{}, fmt.Errorf("reconstruct %s %s: %w", ticker, day, err)
	}

	trades, err := p.classifier.Classify(events)
	if err != nil {
		return DayResult{}, fmt.Errorf("classify %s %s: %w", ticker, day, err)
	}

	open, close := p.cfg.WindowOpenSecond, p.cfg.WindowCloseSecond

	mid, err := resample.PriceSeries(resample.Midpoints(changes), open, close)
	if err != nil {
		return DayResult{}, fmt.Errorf("resample midpoint %s %s: %w", ticker, day, err)
	}
	sgn := resample.SignSeries(trades, open, close)

	resp, err := response.Compute(mid, sgn, p.cfg.MaxLag)
	if err != nil {
		return DayResult{}, fmt.Errorf("response %s %s: %w", ticker, day, err)
	}

	p.logger.Debug("pass complete",
		"ticker", ticker,
		"day", day,
		"quote_changes", len(changes),
		"trades", len(trades),
	)

	return DayResult{
		Ticker:    ticker,
		Day:       day,
		Midpoint:  mid,
		TradeSign: sgn,
		Response:  resp,
	}, nil
}
