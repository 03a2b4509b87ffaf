package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ticker-sentiment/internal/article"
	"ticker-sentiment/internal/article/articleobs"
	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
	"ticker-sentiment/internal/pipeline"
	"ticker-sentiment/internal/sentiment"
	"ticker-sentiment/internal/sentiment/scorerobs"
	"ticker-sentiment/internal/store"
	"ticker-sentiment/internal/trace"
)

// initializeSystem loads .env and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig reads RANKER_CONFIG (default config.yaml) and validates it
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("RANKER_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		logger.ErrorWithErr(ctx, "Invalid config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// initializeScorer builds the sentence scorer named by scorer.provider
func initializeScorer(ctx context.Context, cfg *store.Config) (interfaces.SentimentScorer, error) {
	scorer, err := sentiment.New(sentiment.LLMConfig{
		Provider:    cfg.Scorer.Provider,
		Model:       cfg.Scorer.Model,
		MaxTokens:   cfg.Scorer.MaxTokens,
		Temperature: cfg.Scorer.Temperature,
	}, fetchTimeout(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Sentiment scorer ready", "provider", cfg.Scorer.Provider)
	return scorerobs.Wrap(scorer), nil
}

// initializeArticles builds the rate-limited article source with observability
func initializeArticles(cfg *store.Config) interfaces.ArticleSource {
	fetcher := article.NewFetcher(fetchTimeout(cfg),
		article.WithRateLimit(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst),
		article.WithUserAgent(cfg.Fetch.UserAgent),
	)
	extractor := article.NewExtractor(article.Selectors{
		Tickers: cfg.Extract.TickersSelector,
		Symbol:  cfg.Extract.SymbolSelector,
		Body:    cfg.Extract.BodySelector,
	})
	return articleobs.Wrap(article.NewSource(fetcher, extractor))
}

// pipelineConfig converts the file config into run settings
func pipelineConfig(cfg *store.Config) pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.Workers = cfg.Fetch.Workers
	pc.FailFast = cfg.Fetch.FailFast
	pc.MaxArticles = cfg.MaxArticles

	override(&pc.Filter.MinAbsPolarity, cfg.Filter.MinAbsPolarity)
	override(&pc.Filter.MaxSubjectivity, cfg.Filter.MaxSubjectivity)
	override(&pc.Rank.MeanWeight, cfg.Rank.MeanWeight)
	override(&pc.Rank.DeviationWeight, cfg.Rank.DeviationWeight)
	override(&pc.Rank.CountWeight, cfg.Rank.CountWeight)
	override(&pc.Rank.CountNormalizer, cfg.Rank.CountNormalizer)
	override(&pc.Rank.PolarityShare, cfg.Rank.PolarityShare)
	override(&pc.Rank.SubjectivityShare, cfg.Rank.SubjectivityShare)
	return pc
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func fetchTimeout(cfg *store.Config) time.Duration {
	return time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
}
