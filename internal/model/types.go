package model

// -----------------------------------------------------------------------------
// Event Stream Types
// -----------------------------------------------------------------------------

// EventKind identifies the type of a market-data event.
type EventKind uint8

const (
	KindUnknown       EventKind = iota
	KindAddBuy                  // "B": add buy limit order
	KindAddSell                 // "S": add sell limit order
	KindExecutePartial          // "E": execute outstanding order in part
	KindCancelPartial           // "C": cancel outstanding order in part
	KindExecuteFull             // "F": execute outstanding order in full
	KindDeleteFull              // "D": delete outstanding order in full
	KindCrossTrade              // "X": bulk volume for the cross event
	KindExecuteHidden           // "T": execute non-displayed order
)

// String returns the single-letter exchange code for the kind.
func (k EventKind) String() string {
	switch k {
	case KindAddBuy:
		return "B"
	case KindAddSell:
		return "S"
	case KindExecutePartial:
		return "E"
	case KindCancelPartial:
		return "C"
	case KindExecuteFull:
		return "F"
	case KindDeleteFull:
		return "D"
	case KindCrossTrade:
		return "X"
	case KindExecuteHidden:
		return "T"
	}
	return "?"
}

// IsAdd reports whether the event introduces a resting order.
func (k EventKind) IsAdd() bool {
	return k == KindAddBuy || k == KindAddSell
}

// References reports whether the event references a previously added order.
func (k EventKind) References() bool {
	switch k {
	case KindExecutePartial, KindCancelPartial, KindExecuteFull, KindDeleteFull:
		return true
	}
	return false
}

// IsTrade reports whether the event represents an execution.
func (k EventKind) IsTrade() bool {
	return k == KindExecutePartial || k == KindExecuteFull || k == KindExecuteHidden
}

// Side of a resting order.
type Side uint8

const (
	SideNone Side = iota
	SideBuy
	SideSell
)

// Event is one immutable record of market activity for an instrument-day.
// Events are ordered by Timestamp with original file order as the stable
// secondary key for ties; consumers must never reorder them.
type Event struct {
	Timestamp int64     // ms since midnight
	OrderID   uint64    // resting order reference; 0 for unlinked trade records
	Kind      EventKind //
	Price     int64     // fixed-point 1e-4 currency units
	Quantity  int64     // shares/contracts
}

// -----------------------------------------------------------------------------
// Derived Series Types
// -----------------------------------------------------------------------------

// BestQuoteChange records the book state after an event that moved either
// side of the top of book.
type BestQuoteChange struct {
	Timestamp int64 // ms since midnight
	BestBid   int64 // fixed-point 1e-4
	BestAsk   int64 // fixed-point 1e-4
}

// Midpoint returns the bid/ask midpoint in currency units.
func (c BestQuoteChange) Midpoint() float64 {
	return float64(c.BestBid+c.BestAsk) / 2 / PriceScale
}

// Spread returns the bid/ask spread in currency units.
func (c BestQuoteChange) Spread() float64 {
	return float64(c.BestAsk-c.BestBid) / PriceScale
}

// ClassifiedTrade is an executed trade with its inferred aggressor sign.
type ClassifiedTrade struct {
	Timestamp int64 // ms since midnight
	Price     int64 // fixed-point 1e-4
	Volume    int64 // shares/contracts
	Sign      int8  // +1 buyer-initiated, -1 seller-initiated
}

// PriceScale converts fixed-point prices to currency units.
const PriceScale = 10000.0

// Tick is one price level step (one cent) in fixed-point units.
const Tick = 100

// FixedGridSeries is a dense per-second series over the trading window.
// Values[i] corresponds to second Open+i; len(Values) == Close-Open.
type FixedGridSeries struct {
	Open   int64 // first second of day covered (inclusive)
	Close  int64 // last second of day covered (exclusive)
	Values []float64
}

// NewFixedGridSeries allocates a zeroed grid covering [open, close) seconds.
func NewFixedGridSeries(open, close int64) FixedGridSeries {
	return FixedGridSeries{
		Open:   open,
		Close:  close,
		Values: make([]float64, close-open),
	}
}

// Len returns the number of grid seconds.
func (s FixedGridSeries) Len() int { return len(s.Values) }
