package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/lob-response/internal/book"
	"github.com/rickgao/lob-response/internal/config"
	"github.com/rickgao/lob-response/internal/database"
	"github.com/rickgao/lob-response/internal/metrics"
	"github.com/rickgao/lob-response/internal/pipeline"
	"github.com/rickgao/lob-response/internal/sign"
	"github.com/rickgao/lob-response/internal/source"
	"github.com/rickgao/lob-response/internal/store"
	"github.com/rickgao/lob-response/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/responder.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting responder",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"tickers", len(cfg.Data.Tickers),
		"days", len(cfg.Data.Days),
		"strategy", cfg.Classifier.Strategy,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if cfg.Metrics.Port > 0 {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		metrics.Serve(addr, cfg.Metrics.Path)
		logger.Info("metrics server started", "addr", addr, "path", cfg.Metrics.Path)
	}

	runID := uuid.New()

	// Assemble the day pass
	sessionWindow := book.Window{
		OpenMS:  cfg.Market.SessionOpenSecond * 1000,
		CloseMS: cfg.Market.SessionCloseSecond * 1000,
	}
	engine := book.NewEngine(sessionWindow, logger)

	signWindow := sign.Window{OpenMS: sessionWindow.OpenMS, CloseMS: sessionWindow.CloseMS}
	var classifier sign.Classifier
	switch cfg.Classifier.Strategy {
	case "tickrule":
		classifier = sign.NewTickRule(signWindow, logger)
	default:
		classifier = sign.NewLinkage(signWindow, logger)
	}

	src := source.NewFileSource(cfg.Data.Dir, logger)
	pass := pipeline.NewPass(pipeline.PassConfig{
		WindowOpenSecond:  cfg.Market.WindowOpenSecond,
		WindowCloseSecond: cfg.Market.WindowCloseSecond,
		MaxLag:            cfg.Response.MaxLag,
	}, src, engine, classifier, logger)

	// Optional persistence
	var (
		results *pipeline.Buffer[pipeline.DayResult]
		seriesW *store.ResultWriter
		curveW  *store.CurveWriter
	)
	if cfg.Database.Enabled() {
		logger.Info("connecting to result cache",
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		results = pipeline.NewBuffer[pipeline.DayResult](cfg.Pipeline.BufferSize)
		seriesW = store.NewResultWriter(store.WriterConfig{
			BatchSize:     cfg.Store.BatchSize,
			FlushInterval: cfg.Store.FlushInterval,
		}, results, pool, runID, logger)
		curveW = store.NewCurveWriter(pool, runID, logger)

		if err := seriesW.Start(ctx); err != nil {
			logger.Error("failed to start result writer", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("no database configured, persistence disabled")
	}

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Workers: cfg.Pipeline.Workers,
		MaxLag:  cfg.Response.MaxLag,
	}, pass, results, logger)

	start := time.Now()
	aggregates, err := runner.Run(ctx, cfg.Data.Tickers, cfg.Data.Days)
	if err != nil {
		logger.Error("run aborted", "error", err)
		os.Exit(1)
	}
	logger.Info("all passes finished",
		"duration", time.Since(start),
		"failed_passes", runner.FailedPasses(),
	)

	// Drain the writer before storing curves so series land first.
	if seriesW != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seriesW.Stop(stopCtx); err != nil {
			logger.Warn("result writer shutdown", "error", err)
		}
		stopCancel()
		stats := seriesW.Stats()
		logger.Info("series persisted",
			"days", stats.DaysConsumed,
			"rows", stats.RowsInserted,
			"conflicts", stats.Conflicts,
			"errors", stats.Errors,
		)
	}

	span := cfg.Data.Days[0]
	if n := len(cfg.Data.Days); n > 1 {
		span = cfg.Data.Days[0] + ".." + cfg.Data.Days[n-1]
	}

	for ticker, agg := range aggregates {
		resp := agg.Response()
		logger.Info("response curve computed",
			"ticker", ticker,
			"span", span,
			"lags", len(resp),
			"r_tau1", resp[min(1, len(resp)-1)],
		)
		if curveW != nil {
			if err := curveW.WriteCurve(ctx, ticker, span, agg); err != nil {
				logger.Error("failed to store response curve", "ticker", ticker, "error", err)
			}
		}
	}

	logger.Info("responder finished", "run_id", runID)
}
