package sign

import (
	"errors"
	"testing"

	"github.com/rickgao/lob-response/internal/model"
)

func TestLinkage_FullExecution(t *testing.T) {
	// A sell order fully executed: buyer lifted the offer, sign +1, volume
	// is the resting order's full quantity.
	events := []model.Event{
		{Timestamp: 1000, OrderID: 1, Kind: model.KindAddSell, Price: 1000500, Quantity: 50},
		{Timestamp: 2000, OrderID: 1, Kind: model.KindExecuteFull, Price: 0, Quantity: 0},
	}

	c := NewLinkage(openWindow, nil)
	trades, err := c.Classify(events)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(trades))
	}
	tr := trades[0]
	if tr.Sign != 1 {
		t.Errorf("sign = %d, want +1 (buyer lifted the offer)", tr.Sign)
	}
	if tr.Volume != 50 {
		t.Errorf("volume = %d, want 50", tr.Volume)
	}
	if tr.Price != 1000500 {
		t.Errorf("price = %d, want resting order price 1000500", tr.Price)
	}
}

func TestLinkage_PartialThenFull_VolumeConservation(t *testing.T) {
	events := []model.Event{
		{Timestamp: 1000, OrderID: 7, Kind: model.KindAddBuy, Price: 999500, Quantity: 100},
		{Timestamp: 2000, OrderID: 7, Kind: model.KindExecutePartial, Quantity: 30},
		{Timestamp: 3000, OrderID: 7, Kind: model.KindExecutePartial, Quantity: 20},
		{Timestamp: 4000, OrderID: 7, Kind: model.KindExecuteFull},
	}

	c := NewLinkage(openWindow, nil)
	trades, err := c.Classify(events)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("got %d trades, want 3", len(trades))
	}

	var total int64
	for i, tr := range trades {
		if tr.Sign != -1 {
			t.Errorf("trade %d sign = %d, want -1 (seller hit the bid)", i, tr.Sign)
		}
		total += tr.Volume
	}
	// 30 + 20 partial, then the remaining 50 on the full execution.
	if total != 100 {
		t.Errorf("total matched volume = %d, want original quantity 100", total)
	}
	if trades[2].Volume != 50 {
		t.Errorf("full execution volume = %d, want remaining 50", trades[2].Volume)
	}
}

func TestLinkage_VolumeInconsistency(t *testing.T) {
	events := []model.Event{
		{Timestamp: 1000, OrderID: 3, Kind: model.KindAddSell, Price: 1000000, Quantity: 10},
		{Timestamp: 2000, OrderID: 3, Kind: model.KindExecutePartial, Quantity: 10},
	}

	c := NewLinkage(openWindow, nil)
	_, err := c.Classify(events)
	if !errors.Is(err, model.ErrVolumeInconsistency) {
		t.Errorf("Classify() error = %v, want ErrVolumeInconsistency", err)
	}
}

func TestLinkage_UnmatchedTradeSkipped(t *testing.T) {
	// Order 9 traded but its add never arrived: feed gap, skip the trade.
	events := []model.Event{
		{Timestamp: 1000, OrderID: 1, Kind: model.KindAddSell, Price: 1000000, Quantity: 5},
		{Timestamp: 2000, OrderID: 9, Kind: model.KindExecuteFull},
		{Timestamp: 3000, OrderID: 1, Kind: model.KindExecuteFull},
	}

	c := NewLinkage(openWindow, nil)
	trades, err := c.Classify(events)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1 (unmatched trade skipped)", len(trades))
	}
	if trades[0].Timestamp != 3000 {
		t.Errorf("surviving trade ts = %d, want 3000", trades[0].Timestamp)
	}
}

func TestLinkage_HiddenFallsBackToTickRule(t *testing.T) {
	events := []model.Event{
		{Timestamp: 1000, Kind: model.KindExecuteHidden, Price: 100000, Quantity: 3},
		{Timestamp: 2000, Kind: model.KindExecuteHidden, Price: 99000, Quantity: 2},
		{Timestamp: 3000, Kind: model.KindExecuteHidden, Price: 99000, Quantity: 1},
	}

	c := NewLinkage(openWindow, nil)
	trades, err := c.Classify(events)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("got %d trades, want 3", len(trades))
	}
	// Hidden trades keep their own price and volume.
	if trades[0].Price != 100000 || trades[0].Volume != 3 {
		t.Errorf("hidden trade 0 = %+v, want price 100000 volume 3", trades[0])
	}
	wantSigns := []int8{1, -1, -1} // seed, downtick, carry
	for i, tr := range trades {
		if tr.Sign != wantSigns[i] {
			t.Errorf("hidden trade %d sign = %d, want %d", i, tr.Sign, wantSigns[i])
		}
	}
}

func TestLinkage_MixedVisibleAndHidden(t *testing.T) {
	events := []model.Event{
		{Timestamp: 1000, OrderID: 1, Kind: model.KindAddSell, Price: 1000000, Quantity: 10},
		{Timestamp: 1500, Kind: model.KindExecuteHidden, Price: 999000, Quantity: 4},
		{Timestamp: 2000, OrderID: 1, Kind: model.KindExecuteFull},
	}

	c := NewLinkage(openWindow, nil)
	trades, err := c.Classify(events)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	if trades[0].Sign != 1 { // single hidden trade gets the seed
		t.Errorf("hidden trade sign = %d, want +1", trades[0].Sign)
	}
	if trades[1].Sign != 1 { // visible trade lifted a resting sell
		t.Errorf("visible trade sign = %d, want +1", trades[1].Sign)
	}
}
