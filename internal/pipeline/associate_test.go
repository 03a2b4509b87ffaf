package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker-sentiment/internal/types"
)

func TestAssociate_AbsentInputs(t *testing.T) {
	scorer := newTableScorer(nil)
	ctx := context.Background()

	a, err := Associate(ctx, scorer, types.None[[]types.Symbol](), types.Some("XYZ rose."))
	require.NoError(t, err)
	assert.False(t, a.IsPresent())

	a, err = Associate(ctx, scorer, types.Some([]types.Symbol{"XYZ"}), types.None[string]())
	require.NoError(t, err)
	assert.False(t, a.IsPresent())

	assert.Zero(t, scorer.calls)
}

func TestAssociate_ScoresMatchingSentences(t *testing.T) {
	scorer := newTableScorer(map[string]types.SentimentScore{
		"XYZ beat estimates":       {Polarity: 0.5, Subjectivity: 0.4},
		"ABC and XYZ both fell":    {Polarity: -0.4, Subjectivity: 0.4},
		"Analysts cheered XYZ too": {Polarity: 0.3, Subjectivity: 0.6},
	})
	body := "XYZ beat estimates. ABC and XYZ both fell! Analysts cheered XYZ too? Nothing else."
	syms := []types.Symbol{"XYZ", "ABC", "QQQ", "XYZ"}

	a, err := Associate(context.Background(), scorer, types.Some(syms), types.Some(body))
	require.NoError(t, err)

	entries, ok := a.Get()
	require.True(t, ok)
	require.Len(t, entries, 3, "duplicate symbols collapse to one entry")

	assert.Equal(t, types.Symbol("XYZ"), entries[0].Symbol)
	assert.Len(t, entries[0].Scores, 3)

	assert.Equal(t, types.Symbol("ABC"), entries[1].Symbol)
	assert.Equal(t, []types.SentimentScore{{Polarity: -0.4, Subjectivity: 0.4}}, entries[1].Scores)

	assert.Equal(t, types.Symbol("QQQ"), entries[2].Symbol)
	assert.NotNil(t, entries[2].Scores)
	assert.Empty(t, entries[2].Scores)
}

func TestAssociate_SubstringMatchIsCaseSensitive(t *testing.T) {
	scorer := newTableScorer(nil)
	body := "The ABCD merger closed. abc shares were flat."

	a, err := Associate(context.Background(), scorer, types.Some([]types.Symbol{"ABC"}), types.Some(body))
	require.NoError(t, err)

	entries, _ := a.Get()
	require.Len(t, entries, 1)
	// ABC matches inside ABCD but not the lowercase "abc".
	assert.Len(t, entries[0].Scores, 1)
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("One. Two! Three?..Four")
	assert.Equal(t, []string{"One", " Two", " Three", "Four"}, got)
	assert.Empty(t, SplitSentences("..."))
}
