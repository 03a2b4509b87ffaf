package types

// Symbol is a ticker identifier. Equality is exact and case-sensitive.
type Symbol string

// SentimentScore is one (polarity, subjectivity) measurement of a text segment.
type SentimentScore struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

type SymbolScores struct {
	Symbol Symbol           `json:"symbol"`
	Scores []SentimentScore `json:"scores"`
}

// Association is the per-article associator output. It is absent when the
// article had no extractable symbols or no body text.
type Association = Optional[[]SymbolScores]

// Summary reduces a list of observations to mean, sample deviation and count.
type Summary struct {
	Mean      float64 `json:"mean"`
	Deviation float64 `json:"stdev"`
	Count     int     `json:"n"`
}

type FeelingSummary struct {
	Polarity     Summary `json:"polarity"`
	Subjectivity Summary `json:"subjectivity"`
}

type RankedEntry struct {
	Symbol  Symbol         `json:"symbol"`
	Feeling FeelingSummary `json:"feeling"`
	Score   float64        `json:"rank_score"`
}

// ArticleData is what an extractor pulls out of one article page.
type ArticleData struct {
	URL     string             `json:"url"`
	Symbols Optional[[]Symbol] `json:"symbols"`
	Body    Optional[string]   `json:"body"`
}
