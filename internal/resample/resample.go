package resample

import (
	"fmt"

	"github.com/rickgao/lob-response/internal/model"
)

// Observation is one irregular sample: a value observed at a millisecond
// timestamp.
type Observation struct {
	TS    int64 // ms since midnight
	Value float64
}

// Midpoints projects a best-quote change series onto midpoint observations.
func Midpoints(changes []model.BestQuoteChange) []Observation {
	obs := make([]Observation, len(changes))
	for i, c := range changes {
		obs[i] = Observation{TS: c.Timestamp, Value: c.Midpoint()}
	}
	return obs
}

// PriceSeries resamples a price-like series onto the [open, close) second
// grid. Each second takes the last observation inside it; empty seconds
// carry the previous second forward. When the first seconds of the window
// have no observation they are seeded from the nearest observation before
// the window start. If the raw series never reaches the window start the
// grid cannot be seeded and the day fails with ErrResampleGap.
func PriceSeries(obs []Observation, open, close int64) (model.FixedGridSeries, error) {
	grid := model.NewFixedGridSeries(open, close)
	last := make([]float64, grid.Len())
	seen := make([]bool, grid.Len())

	var seed float64
	seedOK := false
	for _, o := range obs {
		sec := o.TS / 1000
		switch {
		case sec < open:
			seed = o.Value
			seedOK = true
		case sec < close:
			last[sec-open] = o.Value
			seen[sec-open] = true
		}
	}

	cur, curOK := seed, seedOK
	for i := range grid.Values {
		if seen[i] {
			cur, curOK = last[i], true
		}
		if !curOK {
			return model.FixedGridSeries{}, fmt.Errorf(
				"no observation at or before window second %d: %w",
				open, model.ErrResampleGap)
		}
		grid.Values[i] = cur
	}
	return grid, nil
}

// SignSeries resamples classified trades onto the [open, close) second grid.
// Each second holds the sign of the sum of the trade signs inside it;
// seconds with no trades hold 0.
func SignSeries(trades []model.ClassifiedTrade, open, close int64) model.FixedGridSeries {
	grid := model.NewFixedGridSeries(open, close)
	sums := make([]int64, grid.Len())
	for _, tr := range trades {
		sec := tr.Timestamp / 1000
		if sec < open || sec >= close {
			continue
		}
		sums[sec-open] += int64(tr.Sign)
	}
	for i, s := range sums {
		switch {
		case s > 0:
			grid.Values[i] = 1
		case s < 0:
			grid.Values[i] = -1
		}
	}
	return grid
}
