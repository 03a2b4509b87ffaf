package pipeline

import (
	"math"

	"ticker-sentiment/internal/types"
)

const (
	// DefaultMinAbsPolarity: mean polarities closer to zero than this are noise.
	DefaultMinAbsPolarity = 0.05
	// DefaultMaxSubjectivity: text more opinionated than this is not trusted.
	DefaultMaxSubjectivity = 0.95
)

type FilterConfig struct {
	MinAbsPolarity  float64
	MaxSubjectivity float64
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinAbsPolarity:  DefaultMinAbsPolarity,
		MaxSubjectivity: DefaultMaxSubjectivity,
	}
}

// Keep reports whether a symbol's summary is confident enough to rank.
func (c FilterConfig) Keep(f types.FeelingSummary) bool {
	return math.Abs(f.Polarity.Mean) >= c.MinAbsPolarity &&
		f.Subjectivity.Mean <= c.MaxSubjectivity
}

// Filter returns the symbols that pass Keep, in their original order.
func Filter(cfg FilterConfig, feelings *types.Feelings) *types.Feelings {
	out := types.NewFeelings()
	for _, sym := range feelings.Symbols() {
		f, _ := feelings.Get(sym)
		if cfg.Keep(f) {
			out.Set(sym, f)
		}
	}
	return out
}
