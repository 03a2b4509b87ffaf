package sentiment

import (
	"context"
	"strings"
	"unicode"

	"ticker-sentiment/internal/types"
)

// entry is one lexicon word's polarity (-1..1) and subjectivity (0..1).
type entry struct {
	polarity     float64
	subjectivity float64
}

// LexiconScorer scores text against a financial word lexicon. It averages the
// entries of every matched word, flipping and damping a word preceded by a
// negator and scaling one preceded by an intensifier.
type LexiconScorer struct {
	words        map[string]entry
	negators     map[string]bool
	intensifiers map[string]float64
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		words:        loadLexicon(),
		negators:     loadNegators(),
		intensifiers: loadIntensifiers(),
	}
}

func (s *LexiconScorer) Score(_ context.Context, text string) (types.SentimentScore, error) {
	return s.ScoreText(text), nil
}

// ScoreText returns (0, 0) when no lexicon word occurs in text.
func (s *LexiconScorer) ScoreText(text string) types.SentimentScore {
	words := tokenize(strings.ToLower(text))

	var polSum, subSum float64
	matched := 0
	negate := false
	scale := 1.0

	for _, w := range words {
		if s.negators[w] {
			negate = true
			continue
		}
		if f, ok := s.intensifiers[w]; ok {
			scale *= f
			continue
		}

		e, ok := s.words[w]
		if !ok {
			continue
		}

		pol := e.polarity * scale
		sub := e.subjectivity * scale
		if negate {
			pol *= -0.5
		}
		polSum += clamp(pol, -1, 1)
		subSum += clamp(sub, 0, 1)
		matched++

		negate = false
		scale = 1.0
	}

	if matched == 0 {
		return types.SentimentScore{}
	}
	return types.SentimentScore{
		Polarity:     clamp(polSum/float64(matched), -1, 1),
		Subjectivity: clamp(subSum/float64(matched), 0, 1),
	}
}

// tokenize splits text into words of letters and digits
func tokenize(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// Word lists follow the Loughran-McDonald financial sentiment dictionaries,
// with subjectivity weights for how opinion-laden each word reads.

func loadLexicon() map[string]entry {
	m := make(map[string]entry)
	add := func(pol, sub float64, words ...string) {
		for _, w := range words {
			m[w] = entry{polarity: pol, subjectivity: sub}
		}
	}

	// Strongly positive
	add(0.8, 0.9, "excellent", "exceptional", "extraordinary", "remarkable", "tremendous", "outstanding", "stellar")
	add(0.6, 0.7, "great", "superior", "robust", "strong", "upbeat", "optimistic", "bullish", "delight")
	// Positive, more factual
	add(0.5, 0.4, "beat", "beats", "surpass", "surpassed", "outperform", "outperformed", "record", "rally", "rallied", "surge", "surged", "soar", "soared", "jump", "jumped")
	add(0.4, 0.5, "good", "better", "favorable", "profitable", "solid", "success", "successful", "succeed", "winning", "valuable", "upgrade", "upgraded")
	add(0.3, 0.3, "gain", "gains", "gained", "grew", "growth", "improve", "improved", "improvement", "progress", "benefit", "rise", "rose", "higher", "recovery", "boost", "boosted")
	add(0.2, 0.3, "opportunity", "innovation", "innovative", "leader", "leading", "competitive", "achieve", "attain")

	// Strongly negative
	add(-0.8, 0.9, "terrible", "disastrous", "catastrophic", "awful", "dismal", "worst")
	add(-0.6, 0.7, "weak", "poor", "bearish", "disappointing", "disappoint", "worse", "worsen", "fear", "panic")
	// Negative, more factual
	add(-0.5, 0.4, "miss", "missed", "plunge", "plunged", "crash", "crashed", "slump", "slumped", "tumble", "tumbled", "selloff", "downgrade", "downgraded", "bankruptcy", "default", "fraud")
	add(-0.4, 0.4, "loss", "losses", "decline", "declined", "fall", "fell", "drop", "dropped", "lower", "cut", "cuts", "deficit", "downturn", "recession", "slowdown", "layoffs")
	add(-0.3, 0.5, "adverse", "unfavorable", "concern", "concerns", "risk", "risks", "headwind", "headwinds", "difficult", "difficulty", "problem", "crisis", "volatile", "volatility", "lawsuit", "investigation")
	add(-0.2, 0.3, "challenge", "challenging", "obstacle", "impairment", "restructuring", "debt", "erode", "underperform", "underperformed")

	// Hedging and opinion words carry no direction but raise subjectivity.
	add(0.0, 0.8, "believe", "believes", "think", "thinks", "feel", "seems", "apparently", "arguably")
	add(0.0, 0.6, "uncertain", "uncertainty", "unclear", "perhaps", "possibly", "likely", "unlikely", "expect", "expects", "anticipate", "forecast", "predict", "speculation")
	add(0.0, 0.1, "reported", "announced", "filed", "said", "according")

	return m
}

func loadNegators() map[string]bool {
	m := make(map[string]bool)
	for _, w := range []string{
		"not", "no", "never", "without", "cannot", "hardly",
		"isn", "aren", "wasn", "weren", "don", "doesn", "didn", "wouldn", "couldn", "shouldn",
	} {
		m[w] = true
	}
	return m
}

func loadIntensifiers() map[string]float64 {
	return map[string]float64{
		"very":          1.3,
		"highly":        1.3,
		"extremely":     1.5,
		"sharply":       1.4,
		"significantly": 1.3,
		"slightly":      0.5,
		"somewhat":      0.7,
		"modestly":      0.6,
	}
}
