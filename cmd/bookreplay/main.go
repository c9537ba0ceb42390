// Command bookreplay reconstructs one instrument-day and prints its
// best-quote change series. Diagnostic tool for inspecting day files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rickgao/lob-response/internal/book"
	"github.com/rickgao/lob-response/internal/config"
	"github.com/rickgao/lob-response/internal/model"
	"github.com/rickgao/lob-response/internal/source"
)

func main() {
	dir := flag.String("dir", ".", "data directory holding original_data_{year}/")
	ticker := flag.String("ticker", "", "instrument ticker, e.g. AAPL")
	day := flag.String("day", "", "trading day, e.g. 2008-01-02")
	openSec := flag.Int64("open", config.DefaultSessionOpenSecond, "session open, seconds since midnight")
	closeSec := flag.Int64("close", config.DefaultSessionCloseSecond, "session close, seconds since midnight")
	verbose := flag.Bool("v", false, "print every quote change")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *ticker == "" || *day == "" {
		fmt.Fprintln(os.Stderr, "usage: bookreplay -dir DATA -ticker AAPL -day 2008-01-02")
		os.Exit(2)
	}

	src := source.NewFileSource(*dir, logger)
	events, err := src.Events(*ticker, *day)
	if err != nil {
		logger.Error("failed to load events", "error", err)
		os.Exit(1)
	}

	engine := book.NewEngine(book.Window{
		OpenMS:  *openSec * 1000,
		CloseMS: *closeSec * 1000,
	}, logger)

	changes, err := engine.Reconstruct(events)
	if err != nil {
		logger.Error("reconstruction failed", "ticker", *ticker, "day", *day, "error", err)
		os.Exit(1)
	}

	if *verbose {
		for _, c := range changes {
			fmt.Printf("%9dms  bid=%8.2f  ask=%8.2f  mid=%8.3f  spread=%6.2f\n",
				c.Timestamp,
				float64(c.BestBid)/model.PriceScale,
				float64(c.BestAsk)/model.PriceScale,
				c.Midpoint(),
				c.Spread(),
			)
		}
	}

	crossed := 0
	for _, c := range changes {
		if c.BestBid > 0 && c.BestAsk > 0 && c.BestBid > c.BestAsk {
			crossed++
		}
	}

	fmt.Printf("%s %s: %d events, %d quote changes, %d crossed\n",
		*ticker, *day, len(events), len(changes), crossed)
}
