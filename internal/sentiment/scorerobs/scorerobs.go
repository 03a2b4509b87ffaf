package scorerobs

import (
	"context"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
	"ticker-sentiment/internal/trace"
	"ticker-sentiment/internal/types"
)

// observableScorer wraps a SentimentScorer with logging and tracing
type observableScorer struct {
	scorer interfaces.SentimentScorer
}

var _ interfaces.SentimentScorer = (*observableScorer)(nil)

// Wrap wraps a scorer with observability middleware
func Wrap(scorer interfaces.SentimentScorer) interfaces.SentimentScorer {
	return &observableScorer{scorer: scorer}
}

func (o *observableScorer) Score(ctx context.Context, text string) (types.SentimentScore, error) {
	ctx, span := trace.StartSpan(ctx, "sentiment.Score")
	defer span.End()

	score, err := o.scorer.Score(ctx, text)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to score sentence", err, "chars", len(text))
		return types.SentimentScore{}, err
	}

	logger.Debug(ctx, "Sentence scored",
		"chars", len(text),
		"polarity", score.Polarity,
		"subjectivity", score.Subjectivity,
	)
	return score, nil
}
