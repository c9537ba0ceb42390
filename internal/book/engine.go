package book

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/rickgao/lob-response/internal/model"
)

// Window bounds reconstruction output to the market session, in ms since
// midnight. Events outside [OpenMS, CloseMS) are replayed for book state but
// their quote changes are not emitted.
type Window struct {
	OpenMS  int64
	CloseMS int64
}

// Engine reconstructs the best-quote series for one instrument-day.
type Engine struct {
	window Window
	logger *slog.Logger
}

// NewEngine creates an Engine that emits quote changes inside window.
func NewEngine(window Window, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{window: window, logger: logger}
}

// residentOrder is the arena entry for one resting limit order. Later events
// carry no side or price of their own, so lookups resolve both here.
type residentOrder struct {
	side  model.Side
	price int64
}

// bookState holds the per-day replay state. Built fresh per pass and
// discarded afterwards.
type bookState struct {
	orders  []residentOrder  // arena, indexed by compact id
	idIndex map[uint64]int32 // raw order id -> arena index
	refs    []int32          // per-event resolved arena index, -1 when none

	minP    int64 // lowest representable level, fixed-point, cent aligned
	nLevels int
	nAsk    []int32
	nBid    []int32

	bestAskIdx int // -1 = not yet defined
	bestBidIdx int
}

// Reconstruct replays events in order and returns the best-quote change
// series restricted to the engine's window. The input must be ordered by
// timestamp with original file order preserved for ties.
func (e *Engine) Reconstruct(events []model.Event) ([]model.BestQuoteChange, error) {
	st := &bookState{
		idIndex:    make(map[uint64]int32),
		bestAskIdx: -1,
		bestBidIdx: -1,
	}

	if err := st.registerOrders(events); err != nil {
		return nil, err
	}
	if err := st.boundPriceRange(events); err != nil {
		return nil, err
	}

	changes := st.replay(events, e.window)

	e.logger.Debug("day reconstructed",
		"events", len(events),
		"resting_orders", len(st.orders),
		"levels", st.nLevels,
		"quote_changes", len(changes),
	)

	return changes, nil
}

// registerOrders is pass 1: build the resident-order arena and resolve every
// order reference against the orders added so far. Resolving forward keeps
// re-used ids bound to the add that was live when the reference arrived.
func (st *bookState) registerOrders(events []model.Event) error {
	st.refs = make([]int32, len(events))
	for i := range events {
		ev := &events[i]
		st.refs[i] = -1
		switch {
		case ev.Kind.IsAdd():
			side := model.SideBuy
			if ev.Kind == model.KindAddSell {
				side = model.SideSell
			}
			st.idIndex[ev.OrderID] = int32(len(st.orders))
			st.orders = append(st.orders, residentOrder{side: side, price: ev.Price})
		case ev.Kind.References():
			idx, ok := st.idIndex[ev.OrderID]
			if !ok {
				return fmt.Errorf("event %d references unknown order %d: %w",
					i, ev.OrderID, model.ErrMalformedEventSequence)
			}
			st.refs[i] = idx
		}
	}
	return nil
}

// boundPriceRange computes the day's representable price band from the
// resting prices of fully-executed orders: [0.9*min, 1.1*max], rounded to
// the nearest cent, one slot per cent.
func (st *bookState) boundPriceRange(events []model.Event) error {
	var lo, hi int64
	seen := false
	for i := range events {
		ev := &events[i]
		if ev.Kind != model.KindExecuteFull {
			continue
		}
		p := st.orders[st.refs[i]].price
		if !seen || p < lo {
			lo = p
		}
		if !seen || p > hi {
			hi = p
		}
		seen = true
	}
	if !seen {
		return fmt.Errorf("no fully executed orders: %w", model.ErrInsufficientData)
	}

	st.minP = roundToCent(9 * lo / 10)
	maxP := roundToCent(11 * hi / 10)
	st.nLevels = int((maxP - st.minP) / model.Tick)
	if st.nLevels < 1 {
		st.nLevels = 1
	}
	st.nAsk = make([]int32, st.nLevels)
	st.nBid = make([]int32, st.nLevels)
	return nil
}

// replay is pass 2: maintain level counts, track the best on each side and
// emit a change record whenever either best moves.
func (st *bookState) replay(events []model.Event, w Window) []model.BestQuoteChange {
	var changes []model.BestQuoteChange

	for i := range events {
		ev := &events[i]

		// Cross and hidden executions leave no book footprint.
		if ev.Kind == model.KindCrossTrade || ev.Kind == model.KindExecuteHidden {
			continue
		}

		prevAsk, prevBid := st.bestAskIdx, st.bestBidIdx
		st.apply(ev, st.refs[i])

		if st.bestAskIdx != prevAsk || st.bestBidIdx != prevBid {
			if ev.Timestamp >= w.OpenMS && ev.Timestamp < w.CloseMS {
				changes = append(changes, model.BestQuoteChange{
					Timestamp: ev.Timestamp,
					BestBid:   st.levelPrice(st.bestBidIdx),
					BestAsk:   st.levelPrice(st.bestAskIdx),
				})
			}
		}
	}

	return changes
}

// apply mutates the level counts and best indices for one event.
func (st *bookState) apply(ev *model.Event, ref int32) {
	switch ev.Kind {
	case model.KindAddSell:
		idx := st.levelIndex(ev.Price)
		if idx < 0 {
			return
		}
		if st.nAsk[idx] == 0 && (st.bestAskIdx < 0 || idx < st.bestAskIdx) {
			st.bestAskIdx = idx
		}
		st.nAsk[idx]++

	case model.KindAddBuy:
		idx := st.levelIndex(ev.Price)
		if idx < 0 {
			return
		}
		if st.nBid[idx] == 0 && idx > st.bestBidIdx {
			st.bestBidIdx = idx
		}
		st.nBid[idx]++

	case model.KindExecuteFull, model.KindDeleteFull:
		ord := st.orders[ref]
		idx := st.levelIndex(ord.price)
		if idx < 0 {
			return
		}
		if ord.side == model.SideSell {
			st.nAsk[idx]--
			if st.nAsk[idx] == 0 && idx == st.bestAskIdx {
				st.bestAskIdx = st.scanBestAsk(idx)
			}
		} else {
			st.nBid[idx]--
			if st.nBid[idx] == 0 && idx == st.bestBidIdx {
				st.bestBidIdx = st.scanBestBid(idx)
			}
		}
	}
	// Partial executions and cancels leave the order resting; the level
	// count tracks orders, not shares.
}

// scanBestAsk finds the lowest level with a resting ask. When the book side
// is empty the previous best is retained until a new order redefines it.
func (st *bookState) scanBestAsk(prev int) int {
	for idx := 0; idx < st.nLevels; idx++ {
		if st.nAsk[idx] > 0 {
			return idx
		}
	}
	return prev
}

// scanBestBid finds the highest level with a resting bid.
func (st *bookState) scanBestBid(prev int) int {
	for idx := st.nLevels - 1; idx >= 0; idx-- {
		if st.nBid[idx] > 0 {
			return idx
		}
	}
	return prev
}

// levelIndex maps a fixed-point price to its cent slot, or -1 when the
// price falls outside the day's band.
func (st *bookState) levelIndex(price int64) int {
	idx := int(math.Round(float64(price-st.minP) / model.Tick))
	if idx < 0 || idx >= st.nLevels {
		return -1
	}
	return idx
}

// levelPrice converts a slot back to a fixed-point price; 0 when the side
// has never been defined.
func (st *bookState) levelPrice(idx int) int64 {
	if idx < 0 {
		return 0
	}
	return st.minP + int64(idx)*model.Tick
}

// roundToCent rounds a fixed-point price to the nearest whole cent.
func roundToCent(p int64) int64 {
	return (p + model.Tick/2) / model.Tick * model.Tick
}
