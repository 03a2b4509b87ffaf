package pipeline

import "ticker-sentiment/internal/types"

// Aggregator merges per-article associations into one Observations map.
// It is not safe for concurrent use; Runner gives it a single owner.
type Aggregator struct {
	obs *types.Observations
}

func NewAggregator() *Aggregator {
	return &Aggregator{obs: types.NewObservations()}
}

// Merge appends an article's scores. Absent associations are skipped.
func (a *Aggregator) Merge(assoc types.Association) {
	entries, ok := assoc.Get()
	if !ok {
		return
	}
	for _, e := range entries {
		a.obs.Append(e.Symbol, e.Scores)
	}
}

// MergeObservations folds a partially aggregated map into this one.
func (a *Aggregator) MergeObservations(part *types.Observations) {
	for _, sym := range part.Symbols() {
		scores, _ := part.Get(sym)
		a.obs.Append(sym, scores)
	}
}

func (a *Aggregator) Observations() *types.Observations {
	return a.obs
}

// Aggregate merges a whole batch at once.
func Aggregate(assocs []types.Association) *types.Observations {
	agg := NewAggregator()
	for _, a := range assocs {
		agg.Merge(a)
	}
	return agg.Observations()
}
