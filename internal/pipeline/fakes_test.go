package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/types"
)

// tableScorer looks sentences up by their trimmed text; unknown text is neutral.
type tableScorer struct {
	mu     sync.Mutex
	scores map[string]types.SentimentScore
	calls  int
}

func newTableScorer(scores map[string]types.SentimentScore) *tableScorer {
	return &tableScorer{scores: scores}
}

func (s *tableScorer) Score(_ context.Context, text string) (types.SentimentScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.scores[strings.TrimSpace(text)], nil
}

type fakeFeed struct {
	result interfaces.FeedResult
	err    error
}

func (f fakeFeed) Fetch(context.Context, string) (interfaces.FeedResult, error) {
	return f.result, f.err
}

type fakeArticle struct {
	data  types.ArticleData
	err   error
	delay time.Duration
}

type fakeArticles map[string]fakeArticle

func (f fakeArticles) Load(ctx context.Context, link string) (types.ArticleData, error) {
	a := f[link]
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return types.ArticleData{}, ctx.Err()
		}
	}
	return a.data, a.err
}

func article(body string, syms ...types.Symbol) types.ArticleData {
	return types.ArticleData{Symbols: types.Some(syms), Body: types.Some(body)}
}
