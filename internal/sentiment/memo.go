package sentiment

import (
	"context"
	"sync"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/types"
)

// Memo caches scores by sentence for the lifetime of one run. A sentence that
// mentions several symbols is scored once. Safe for concurrent use.
type Memo struct {
	inner interfaces.SentimentScorer

	mu   sync.RWMutex
	data map[string]types.SentimentScore
	hits int
}

func NewMemo(inner interfaces.SentimentScorer) *Memo {
	return &Memo{
		inner: inner,
		data:  make(map[string]types.SentimentScore),
	}
}

func (m *Memo) Score(ctx context.Context, text string) (types.SentimentScore, error) {
	if s, ok := m.get(text); ok {
		return s, nil
	}

	s, err := m.inner.Score(ctx, text)
	if err != nil {
		return types.SentimentScore{}, err
	}
	m.set(text, s)
	return s, nil
}

func (m *Memo) get(text string) (types.SentimentScore, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.data[text]
	if ok {
		m.hits++
	}
	return s, ok
}

func (m *Memo) set(text string, s types.SentimentScore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[text] = s
}

// Len returns the number of distinct sentences scored.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Hits returns how many lookups were served from the cache.
func (m *Memo) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}
