package response

import (
	"fmt"

	"github.com/rickgao/lob-response/internal/model"
)

// DefaultMaxLag is the lag bank size in seconds.
const DefaultMaxLag = 1000

// DayResponse holds one day's per-lag return-sign products and sample
// counts. R[tau] sums (m[t+tau+1]-m[t])/m[t] * s[t] over valid t; N[tau]
// counts the t in the same range with a nonzero sign.
type DayResponse struct {
	R []float64
	N []int64
}

// Zero returns an empty contribution, used for failed days.
func Zero(maxLag int) DayResponse {
	return DayResponse{R: make([]float64, maxLag), N: make([]int64, maxLag)}
}

// Compute evaluates the response sums of one day from its midpoint and
// trade-sign grids. Both grids must cover the same window.
func Compute(mid, sgn model.FixedGridSeries, maxLag int) (DayResponse, error) {
	if mid.Len() != sgn.Len() {
		return DayResponse{}, fmt.Errorf("grid length mismatch: midpoint %d, sign %d",
			mid.Len(), sgn.Len())
	}

	day := Zero(maxLag)
	m, s := mid.Values, sgn.Values

	for tau := 0; tau < maxLag; tau++ {
		limit := len(m) - tau - 1
		for t := 0; t < limit; t++ {
			if s[t] == 0 {
				continue
			}
			day.R[tau] += (m[t+tau+1] - m[t]) / m[t] * s[t]
			day.N[tau]++
		}
	}
	return day, nil
}

// Aggregate reduces day responses into a multi-day average.
type Aggregate struct {
	r []float64
	n []int64
}

// NewAggregate creates an empty aggregate over maxLag lags.
func NewAggregate(maxLag int) *Aggregate {
	return &Aggregate{r: make([]float64, maxLag), n: make([]int64, maxLag)}
}

// Add folds one day into the aggregate. Order of calls does not matter.
func (a *Aggregate) Add(day DayResponse) error {
	if len(day.R) != len(a.r) || len(day.N) != len(a.n) {
		return fmt.Errorf("lag bank mismatch: day %d, aggregate %d", len(day.R), len(a.r))
	}
	for tau := range a.r {
		a.r[tau] += day.R[tau]
		a.n[tau] += day.N[tau]
	}
	return nil
}

// Samples returns the per-lag sample counts accumulated so far.
func (a *Aggregate) Samples() []int64 {
	out := make([]int64, len(a.n))
	copy(out, a.n)
	return out
}

// Response returns the per-lag averaged response. A lag that saw no signed
// seconds yields 0, not a division error.
func (a *Aggregate) Response() []float64 {
	out := make([]float64, len(a.r))
	for tau := range a.r {
		if a.n[tau] != 0 {
			out[tau] = a.r[tau] / float64(a.n[tau])
		}
	}
	return out
}
