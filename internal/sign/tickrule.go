package sign

import (
	"log/slog"

	"github.com/rickgao/lob-response/internal/model"
)

// TickRule classifies trades by the direction of the price change between
// consecutive trades. Used when the source provides only a time-ordered
// trade price series with no order linkage.
type TickRule struct {
	window Window
	logger *slog.Logger
}

// NewTickRule creates a tick-rule classifier.
func NewTickRule(window Window, logger *slog.Logger) *TickRule {
	if logger == nil {
		logger = slog.Default()
	}
	return &TickRule{window: window, logger: logger}
}

// Classify implements Classifier. Every trade event in the input is an
// observation; non-trade events are ignored. Prices and volumes are taken
// from the trade records themselves.
func (t *TickRule) Classify(events []model.Event) ([]model.ClassifiedTrade, error) {
	var obs []model.Event
	for i := range events {
		if events[i].Kind.IsTrade() {
			obs = append(obs, events[i])
		}
	}
	if len(obs) == 0 {
		return nil, nil
	}

	prices := make([]int64, len(obs))
	for i := range obs {
		prices[i] = obs[i].Price
	}
	signs := tickSigns(prices)

	trades := make([]model.ClassifiedTrade, 0, len(obs))
	for i := range obs {
		if !t.window.Contains(obs[i].Timestamp) {
			continue
		}
		trades = append(trades, model.ClassifiedTrade{
			Timestamp: obs[i].Timestamp,
			Price:     obs[i].Price,
			Volume:    obs[i].Quantity,
			Sign:      signs[i],
		})
	}

	if err := verifySigned(trades); err != nil {
		return nil, err
	}
	return trades, nil
}
