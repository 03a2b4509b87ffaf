package types

// Observations maps each symbol to every score observed for it during a run.
// Symbols are kept in first-appearance order.
type Observations struct {
	order  []Symbol
	scores map[Symbol][]SentimentScore
}

func NewObservations() *Observations {
	return &Observations{scores: make(map[Symbol][]SentimentScore)}
}

// Append concatenates scores onto the symbol's list, creating the entry
// (possibly empty) on first sight.
func (o *Observations) Append(sym Symbol, scores []SentimentScore) {
	existing, ok := o.scores[sym]
	if !ok {
		o.order = append(o.order, sym)
		existing = make([]SentimentScore, 0, len(scores))
	}
	o.scores[sym] = append(existing, scores...)
}

func (o *Observations) Get(sym Symbol) ([]SentimentScore, bool) {
	s, ok := o.scores[sym]
	return s, ok
}

func (o *Observations) Symbols() []Symbol {
	out := make([]Symbol, len(o.order))
	copy(out, o.order)
	return out
}

func (o *Observations) Len() int {
	return len(o.order)
}

// Total returns the number of scores across all symbols.
func (o *Observations) Total() int {
	n := 0
	for _, s := range o.scores {
		n += len(s)
	}
	return n
}

// Feelings maps symbols to their summaries, preserving insertion order.
type Feelings struct {
	order []Symbol
	data  map[Symbol]FeelingSummary
}

func NewFeelings() *Feelings {
	return &Feelings{data: make(map[Symbol]FeelingSummary)}
}

func (f *Feelings) Set(sym Symbol, fs FeelingSummary) {
	if _, ok := f.data[sym]; !ok {
		f.order = append(f.order, sym)
	}
	f.data[sym] = fs
}

func (f *Feelings) Get(sym Symbol) (FeelingSummary, bool) {
	fs, ok := f.data[sym]
	return fs, ok
}

func (f *Feelings) Symbols() []Symbol {
	out := make([]Symbol, len(f.order))
	copy(out, f.order)
	return out
}

func (f *Feelings) Len() int {
	return len(f.order)
}
