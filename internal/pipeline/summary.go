package pipeline

import (
	"math"

	"ticker-sentiment/internal/types"
)

// Summarize reduces values to mean, sample deviation and count.
// Fewer than three values give a deviation of 0; no values give a mean of 0.
func Summarize(values []float64) types.Summary {
	n := len(values)
	if n == 0 {
		return types.Summary{}
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	s := types.Summary{Mean: mean, Count: n}
	if n <= 2 {
		return s
	}

	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	s.Deviation = math.Sqrt(sq / float64(n-1))
	return s
}

// SummarizeScores summarises polarity and subjectivity independently.
func SummarizeScores(scores []types.SentimentScore) types.FeelingSummary {
	pol := make([]float64, len(scores))
	sub := make([]float64, len(scores))
	for i, s := range scores {
		pol[i] = s.Polarity
		sub[i] = s.Subjectivity
	}
	return types.FeelingSummary{
		Polarity:     Summarize(pol),
		Subjectivity: Summarize(sub),
	}
}

func SummarizeAll(obs *types.Observations) *types.Feelings {
	out := types.NewFeelings()
	for _, sym := range obs.Symbols() {
		scores, _ := obs.Get(sym)
		out.Set(sym, SummarizeScores(scores))
	}
	return out
}
