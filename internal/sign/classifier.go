package sign

import (
	"fmt"

	"github.com/rickgao/lob-response/internal/model"
)

// Window bounds classification output to the market session, in ms since
// midnight.
type Window struct {
	OpenMS  int64
	CloseMS int64
}

// Contains reports whether a timestamp falls inside the window.
func (w Window) Contains(ts int64) bool {
	return ts >= w.OpenMS && ts < w.CloseMS
}

// Classifier assigns an aggressor sign to every executed trade in one
// instrument-day of events.
type Classifier interface {
	Classify(events []model.Event) ([]model.ClassifiedTrade, error)
}

// tickSigns applies the tick rule to an ordered trade price series.
//
// The last trade is seeded with +1 before the scan; the first trade has no
// predecessor and carries the seed. Unchanged prices carry the previous
// trade's sign, so no element is ever left unsigned.
func tickSigns(prices []int64) []int8 {
	n := len(prices)
	if n == 0 {
		return nil
	}
	signs := make([]int8, n)
	signs[n-1] = 1
	for i := 0; i < n; i++ {
		if i == 0 {
			signs[0] = signs[n-1]
			continue
		}
		switch d := prices[i] - prices[i-1]; {
		case d > 0:
			signs[i] = 1
		case d < 0:
			signs[i] = -1
		default:
			signs[i] = signs[i-1]
		}
	}
	return signs
}

// verifySigned asserts the post-condition that every classified trade
// carries a nonzero sign.
func verifySigned(trades []model.ClassifiedTrade) error {
	for i := range trades {
		if trades[i].Sign == 0 {
			return fmt.Errorf("trade %d at t=%dms has no sign: %w",
				i, trades[i].Timestamp, model.ErrClassificationFailure)
		}
	}
	return nil
}
