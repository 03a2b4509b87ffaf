package sentiment

import (
	"context"

	"ticker-sentiment/internal/types"
)

// NoopScorer reports every segment as neutral and factual.
type NoopScorer struct{}

func NewNoopScorer() NoopScorer { return NoopScorer{} }

func (NoopScorer) Score(context.Context, string) (types.SentimentScore, error) {
	return types.SentimentScore{}, nil
}
