package pipeline

import (
	"context"
	"strings"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/types"
)

// Associate scores every sentence of body that mentions each symbol.
// Matching is plain case-sensitive substring containment, so a short ticker
// also matches inside longer tokens.
func Associate(ctx context.Context, scorer interfaces.SentimentScorer, symbols types.Optional[[]types.Symbol], body types.Optional[string]) (types.Association, error) {
	syms, ok := symbols.Get()
	if !ok {
		return types.None[[]types.SymbolScores](), nil
	}
	text, ok := body.Get()
	if !ok {
		return types.None[[]types.SymbolScores](), nil
	}

	sentences := SplitSentences(text)
	out := make([]types.SymbolScores, 0, len(syms))
	for _, sym := range dedupe(syms) {
		scores := []types.SentimentScore{}
		for _, sentence := range sentences {
			if !strings.Contains(sentence, string(sym)) {
				continue
			}
			score, err := scorer.Score(ctx, sentence)
			if err != nil {
				return types.None[[]types.SymbolScores](), err
			}
			scores = append(scores, score)
		}
		out = append(out, types.SymbolScores{Symbol: sym, Scores: scores})
	}
	return types.Some(out), nil
}

// SplitSentences cuts text on sentence terminators, dropping empty segments.
func SplitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func dedupe(syms []types.Symbol) []types.Symbol {
	seen := make(map[types.Symbol]struct{}, len(syms))
	out := make([]types.Symbol, 0, len(syms))
	for _, s := range syms {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
