package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticker-sentiment/internal/feed"
	"ticker-sentiment/internal/logger"
	"ticker-sentiment/internal/pipeline"
	"ticker-sentiment/internal/report"
	"ticker-sentiment/internal/trace"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := initializeSystem(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(ctx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return 1
	}

	scorer, err := initializeScorer(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize sentiment scorer", err)
		return 1
	}

	runner := pipeline.NewRunner(
		pipelineConfig(cfg),
		feed.NewSource(fetchTimeout(cfg), cfg.Fetch.UserAgent),
		initializeArticles(cfg),
		scorer,
	)

	result, err := runner.Run(ctx, cfg.FeedURL)
	if err != nil {
		logger.ErrorWithErr(ctx, "Run aborted", err, "feed_url", cfg.FeedURL)
		return 1
	}

	logger.Info(ctx, "Run completed",
		"articles", result.Articles,
		"without_data", result.Absent,
		"skipped", result.Skipped,
		"symbols", result.Symbols,
		"ranked", len(result.Ranked),
		"duration_ms", result.DurationMS,
	)

	if err := report.WriteText(os.Stdout, result.Ranked); err != nil {
		logger.ErrorWithErr(ctx, "Failed to write report", err)
		return 1
	}

	if path := cfg.Output.JSONPath; path != "" {
		if err := report.WriteJSON(path, result); err != nil {
			logger.Warn(ctx, "Failed to save results to file", "error", err, "path", path)
		} else {
			logger.Info(ctx, "Results saved", "file", path)
		}
	}
	return 0
}
