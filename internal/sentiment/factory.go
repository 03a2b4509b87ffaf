package sentiment

import (
	"strings"
	"time"

	"ticker-sentiment/internal/interfaces"
)

// New returns the scorer for provider: LEXICON, OPENAI, CLAUDE or NOOP.
func New(cfg LLMConfig, timeout time.Duration) (interfaces.SentimentScorer, error) {
	switch strings.ToUpper(cfg.Provider) {
	case "", "LEXICON":
		return NewLexiconScorer(), nil
	case "NOOP":
		return NewNoopScorer(), nil
	default:
		return NewLLMScorer(cfg, timeout)
	}
}
