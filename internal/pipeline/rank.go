package pipeline

import (
	"sort"

	"ticker-sentiment/internal/types"
)

// Default ranking weights. CountNormalizer assumes a typical symbol is
// mentioned about four times; it scales the count term but does not cap it.
const (
	DefaultMeanWeight        = 0.6
	DefaultDeviationWeight   = 0.2
	DefaultCountWeight       = 0.2
	DefaultCountNormalizer   = 4.0
	DefaultPolarityShare     = 0.5
	DefaultSubjectivityShare = 0.5
)

type RankWeights struct {
	MeanWeight        float64
	DeviationWeight   float64
	CountWeight       float64
	CountNormalizer   float64
	PolarityShare     float64
	SubjectivityShare float64
}

func DefaultRankWeights() RankWeights {
	return RankWeights{
		MeanWeight:        DefaultMeanWeight,
		DeviationWeight:   DefaultDeviationWeight,
		CountWeight:       DefaultCountWeight,
		CountNormalizer:   DefaultCountNormalizer,
		PolarityShare:     DefaultPolarityShare,
		SubjectivityShare: DefaultSubjectivityShare,
	}
}

func (w RankWeights) Subscore(s types.Summary) float64 {
	return w.MeanWeight*s.Mean +
		w.DeviationWeight*(1-s.Deviation) +
		w.CountWeight*(float64(s.Count)/w.CountNormalizer)
}

func (w RankWeights) Score(f types.FeelingSummary) float64 {
	return w.PolarityShare*w.Subscore(f.Polarity) + w.SubjectivityShare*w.Subscore(f.Subjectivity)
}

// Rank orders symbols by descending score. Equal scores keep input order.
func Rank(w RankWeights, feelings *types.Feelings) []types.RankedEntry {
	entries := make([]types.RankedEntry, 0, feelings.Len())
	for _, sym := range feelings.Symbols() {
		f, _ := feelings.Get(sym)
		entries = append(entries, types.RankedEntry{Symbol: sym, Feeling: f, Score: w.Score(f)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
