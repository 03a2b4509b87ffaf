package interfaces

import (
	"context"

	"ticker-sentiment/internal/types"
)

// SentimentScorer measures the polarity and subjectivity of one text segment.
type SentimentScorer interface {
	Score(ctx context.Context, text string) (types.SentimentScore, error)
}
