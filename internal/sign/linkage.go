package sign

import (
	"fmt"
	"log/slog"

	"github.com/rickgao/lob-response/internal/model"
)

// Linkage classifies trades by matching each execution to the resting order
// it consumed. Used when the source carries order ids on executions.
type Linkage struct {
	window Window
	logger *slog.Logger
}

// NewLinkage creates an order-linkage classifier.
func NewLinkage(window Window, logger *slog.Logger) *Linkage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linkage{window: window, logger: logger}
}

// restingEntry is one not-yet-consumed resting order available for matching.
type restingEntry struct {
	side      model.Side
	price     int64
	remaining int64
	consumed  bool
}

// Classify implements Classifier.
//
// ExecuteFull consumes the matched order's entire remaining quantity and
// retires it; ExecutePartial consumes the traded quantity and decrements the
// remainder, which must stay positive. Hidden executions have no resting
// counterpart: price and volume come from the trade record and their signs
// fall back to the tick rule, applied over the hidden trades alone. A trade
// whose order id matches no remaining resting order is skipped; this models
// feed gaps, not corruption.
func (l *Linkage) Classify(events []model.Event) ([]model.ClassifiedTrade, error) {
	tradeIDs := make(map[uint64]bool)
	for i := range events {
		if events[i].Kind.IsTrade() {
			tradeIDs[events[i].OrderID] = true
		}
	}

	// Resting orders in FIFO arrival order, restricted to ids that trade.
	arena := make([]restingEntry, 0, len(tradeIDs))
	queue := make(map[uint64][]int32)
	for i := range events {
		ev := &events[i]
		if !ev.Kind.IsAdd() || !tradeIDs[ev.OrderID] {
			continue
		}
		side := model.SideBuy
		if ev.Kind == model.KindAddSell {
			side = model.SideSell
		}
		queue[ev.OrderID] = append(queue[ev.OrderID], int32(len(arena)))
		arena = append(arena, restingEntry{side: side, price: ev.Price, remaining: ev.Quantity})
	}

	var (
		trades       []model.ClassifiedTrade
		hiddenPrices []int64
		hiddenPos    []int
		skipped      int
	)

	for i := range events {
		ev := &events[i]
		switch ev.Kind {
		case model.KindExecuteHidden:
			hiddenPos = append(hiddenPos, len(trades))
			hiddenPrices = append(hiddenPrices, ev.Price)
			trades = append(trades, model.ClassifiedTrade{
				Timestamp: ev.Timestamp,
				Price:     ev.Price,
				Volume:    ev.Quantity,
			})

		case model.KindExecutePartial, model.KindExecuteFull:
			entry := l.match(queue, arena, ev.OrderID)
			if entry == nil {
				skipped++
				continue
			}
			volume := ev.Quantity
			if ev.Kind == model.KindExecuteFull {
				volume = entry.remaining
				entry.consumed = true
			} else {
				entry.remaining -= ev.Quantity
				if entry.remaining <= 0 {
					return nil, fmt.Errorf("order %d partial execution of %d left %d: %w",
						ev.OrderID, ev.Quantity, entry.remaining, model.ErrVolumeInconsistency)
				}
			}
			sgn := int8(-1)
			if entry.side == model.SideSell {
				sgn = 1 // trade lifted an offer: buyer-initiated
			}
			trades = append(trades, model.ClassifiedTrade{
				Timestamp: ev.Timestamp,
				Price:     entry.price,
				Volume:    volume,
				Sign:      sgn,
			})
		}
	}

	for j, sgn := range tickSigns(hiddenPrices) {
		trades[hiddenPos[j]].Sign = sgn
	}

	if skipped > 0 {
		l.logger.Warn("trades with no matching resting order skipped", "count", skipped)
	}

	if err := verifySigned(trades); err != nil {
		return nil, err
	}

	// Window restriction happens last so hidden-trade tick signs see the
	// whole day's sequence.
	out := trades[:0]
	for _, tr := range trades {
		if l.window.Contains(tr.Timestamp) {
			out = append(out, tr)
		}
	}
	return out, nil
}

// match returns the first remaining resting order for the id, or nil.
func (l *Linkage) match(queue map[uint64][]int32, arena []restingEntry, id uint64) *restingEntry {
	for _, idx := range queue[id] {
		if !arena[idx].consumed {
			return &arena[idx]
		}
	}
	return nil
}
