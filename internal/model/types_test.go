package model

import "testing"

func TestEventKindPredicates(t *testing.T) {
	tests := []struct {
		kind       EventKind
		isAdd      bool
		references bool
		isTrade    bool
	}{
		{KindAddBuy, true, false, false},
		{KindAddSell, true, false, false},
		{KindExecutePartial, false, true, true},
		{KindCancelPartial, false, true, false},
		{KindExecuteFull, false, true, true},
		{KindDeleteFull, false, true, false},
		{KindCrossTrade, false, false, false},
		{KindExecuteHidden, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsAdd(); got != tt.isAdd {
				t.Errorf("IsAdd() = %v, want %v", got, tt.isAdd)
			}
			if got := tt.kind.References(); got != tt.references {
				t.Errorf("References() = %v, want %v", got, tt.references)
			}
			if got := tt.kind.IsTrade(); got != tt.isTrade {
				t.Errorf("IsTrade() = %v, want %v", got, tt.isTrade)
			}
		})
	}

	if got := KindUnknown.String(); got != "?" {
		t.Errorf("KindUnknown.String() = %q, want %q", got, "?")
	}
}

func TestBestQuoteChange(t *testing.T) {
	c := BestQuoteChange{BestBid: 1000000, BestAsk: 1000500}

	if got := c.Midpoint(); got != 100.025 {
		t.Errorf("Midpoint() = %v, want 100.025", got)
	}
	if got := c.Spread(); got != 0.05 {
		t.Errorf("Spread() = %v, want 0.05", got)
	}
}

func TestNewFixedGridSeries(t *testing.T) {
	s := NewFixedGridSeries(34800, 57000)

	if s.Len() != 22200 {
		t.Errorf("Len() = %d, want 22200", s.Len())
	}
	if s.Open != 34800 || s.Close != 57000 {
		t.Errorf("bounds = [%d, %d), want [34800, 57000)", s.Open, s.Close)
	}
	for i, v := range s.Values {
		if v != 0 {
			t.Fatalf("Values[%d] = %v, want 0", i, v)
		}
	}
}
