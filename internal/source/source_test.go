package source

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rickgao/lob-response/internal/model"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		code string
		want model.EventKind
	}{
		{"B", model.KindAddBuy},
		{"S", model.KindAddSell},
		{"E", model.KindExecutePartial},
		{"C", model.KindCancelPartial},
		{"F", model.KindExecuteFull},
		{"D", model.KindDeleteFull},
		{"X", model.KindCrossTrade},
		{"T", model.KindExecuteHidden},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseKind(tt.code)
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.code, got, tt.want)
			}
			if got.String() != tt.code {
				t.Errorf("round trip: %v.String() = %q, want %q", got, got.String(), tt.code)
			}
		})
	}

	if _, err := ParseKind("Z"); err == nil {
		t.Error("ParseKind(\"Z\") succeeded, want error")
	}
}

func TestNormalize(t *testing.T) {
	ev, err := normalize("34800123", "42", "B", "100", "1000500")
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	want := model.Event{
		Timestamp: 34800123,
		OrderID:   42,
		Kind:      model.KindAddBuy,
		Quantity:  100,
		Price:     1000500,
	}
	if ev != want {
		t.Errorf("normalize() = %+v, want %+v", ev, want)
	}
}

func TestNormalize_BadFields(t *testing.T) {
	tests := []struct {
		name                           string
		ts, order, code, shares, price string
	}{
		{"bad timestamp", "x", "1", "B", "10", "100"},
		{"bad order", "100", "x", "B", "10", "100"},
		{"bad code", "100", "1", "Q", "10", "100"},
		{"bad shares", "100", "1", "B", "x", "100"},
		{"bad price", "100", "1", "B", "10", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalize(tt.ts, tt.order, tt.code, tt.shares, tt.price); err == nil {
				t.Errorf("normalize() succeeded, want error")
			}
		})
	}
}

func writeDayFile(t *testing.T, dir, ticker, day, content string) {
	t.Helper()
	src := NewFileSource(dir, nil)
	path := src.Path(ticker, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFileSource_Events(t *testing.T) {
	dir := t.TempDir()
	writeDayFile(t, dir, "AAPL", "2008-01-02",
		"Time,Seq,Order,T,Shares,Price\n"+
			"34800000,1,1,B,100,1000000\n"+
			"34801000,2,2,S,50,1000500\n"+
			"34802000,3,2,F,0,0\n")

	src := NewFileSource(dir, nil)
	events, err := src.Events("AAPL", "2008-01-02")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Kind != model.KindAddBuy || events[0].OrderID != 1 {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[2].Kind != model.KindExecuteFull || events[2].OrderID != 2 {
		t.Errorf("event 2 = %+v", events[2])
	}
}

func TestFileSource_MissingDay(t *testing.T) {
	src := NewFileSource(t.TempDir(), nil)
	_, err := src.Events("AAPL", "2008-01-02")
	if !errors.Is(err, model.ErrInputNotFound) {
		t.Errorf("Events() error = %v, want ErrInputNotFound", err)
	}
}

func TestFileSource_UnknownCodeSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDayFile(t, dir, "MSFT", "2008-01-03",
		"Time,Seq,Order,T,Shares,Price\n"+
			"34800000,1,1,B,100,1000000\n"+
			"34800500,2,0,Q,0,0\n"+
			"34801000,3,2,S,50,1000500\n")

	src := NewFileSource(dir, nil)
	events, err := src.Events("MSFT", "2008-01-03")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2 (unknown code skipped)", len(events))
	}
}

func TestFileSource_Path(t *testing.T) {
	src := NewFileSource("/data", nil)
	got := src.Path("AAPL", "2008-01-02")
	want := filepath.Join("/data", "original_data_2008", "20080102_AAPL.csv.gz")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
