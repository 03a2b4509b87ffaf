package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
	"ticker-sentiment/internal/sentiment"
	"ticker-sentiment/internal/types"
)

// Config tunes one pipeline run.
type Config struct {
	Workers     int  // concurrent article tasks
	FailFast    bool // abort the run on the first article failure
	MaxArticles int  // 0 means every feed item
	Filter      FilterConfig
	Rank        RankWeights
}

func DefaultConfig() Config {
	return Config{
		Workers:  4,
		FailFast: true,
		Filter:   DefaultFilterConfig(),
		Rank:     DefaultRankWeights(),
	}
}

// Result is everything a run produced.
type Result struct {
	FeedURL    string              `json:"feed_url"`
	FeedTitle  string              `json:"feed_title,omitempty"`
	Malformed  bool                `json:"malformed_feed"`
	Articles   int                 `json:"articles"`
	Absent     int                 `json:"articles_without_data"`
	Skipped    int                 `json:"articles_skipped"`
	Symbols    int                 `json:"symbols_observed"`
	Mentions   int                 `json:"mentions"`
	Dropped    []types.Symbol      `json:"dropped_symbols"`
	Ranked     []types.RankedEntry `json:"ranked"`
	StartedAt  time.Time           `json:"started_at"`
	DurationMS int64               `json:"duration_ms"`
}

// Runner wires the feed, article and scoring collaborators to the
// aggregation and ranking stages.
type Runner struct {
	feed     interfaces.FeedSource
	articles interfaces.ArticleSource
	scorer   interfaces.SentimentScorer
	cfg      Config
}

func NewRunner(cfg Config, feed interfaces.FeedSource, articles interfaces.ArticleSource, scorer interfaces.SentimentScorer) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{
		feed:     feed,
		articles: articles,
		scorer:   scorer,
		cfg:      cfg,
	}
}

// Run fetches the feed, processes every linked article and ranks the symbols.
// A fetch failure aborts the run when FailFast is set; a malformed feed only warns.
func (r *Runner) Run(ctx context.Context, feedURL string) (*Result, error) {
	op := logger.StartOperation(ctx, "pipeline.Run", "feed_url", feedURL)
	ctx = op.GetContext()

	res := &Result{FeedURL: feedURL, StartedAt: time.Now()}

	feed, err := r.feed.Fetch(ctx, feedURL)
	if err != nil {
		err = fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
		op.EndWithError(err)
		return nil, err
	}
	res.FeedTitle = feed.Title
	res.Malformed = feed.Malformed
	if feed.Malformed {
		logger.Warn(ctx, "ALERT: RSS feed was malformed", "feed_url", feedURL, "links", len(feed.Links))
	}

	links := feed.Links
	if r.cfg.MaxArticles > 0 && len(links) > r.cfg.MaxArticles {
		links = links[:r.cfg.MaxArticles]
	}
	res.Articles = len(links)
	logger.Info(ctx, "Processing feed articles", "feed_url", feedURL, "articles", len(links), "workers", r.cfg.Workers)

	obs, err := r.collect(ctx, links, res)
	if err != nil {
		op.EndWithError(err)
		return nil, err
	}
	res.Symbols = obs.Len()
	res.Mentions = obs.Total()

	feelings := SummarizeAll(obs)
	kept := Filter(r.cfg.Filter, feelings)
	res.Dropped = dropped(feelings, kept)
	for _, sym := range res.Dropped {
		f, _ := feelings.Get(sym)
		logger.Debug(ctx, "Symbol filtered out", "symbol", sym,
			"polarity_mean", f.Polarity.Mean, "subjectivity_mean", f.Subjectivity.Mean, "mentions", f.Polarity.Count)
	}

	res.Ranked = Rank(r.cfg.Rank, kept)
	for i, e := range res.Ranked {
		logger.Ranking(ctx, i+1, string(e.Symbol), e.Score, "mentions", e.Feeling.Polarity.Count)
	}

	res.DurationMS = time.Since(res.StartedAt).Milliseconds()
	op.End("symbols", res.Symbols, "ranked", len(res.Ranked), "skipped", res.Skipped)
	return res, nil
}

type articleResult struct {
	index int
	link  string
	assoc types.Association
	err   error
}

// collect fans articles out to a bounded worker pool. A single owner merges
// the results in feed order so the outcome matches a sequential run.
func (r *Runner) collect(parent context.Context, links []string, res *Result) (*types.Observations, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	scorer := sentiment.NewMemo(r.scorer)
	jobs := make(chan int)
	results := make(chan articleResult)

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go r.worker(ctx, scorer, links, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for i := range links {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	agg := NewAggregator()
	pending := make(map[int]types.Association)
	next := 0
	var firstErr error

	for out := range results {
		if out.err != nil {
			if r.cfg.FailFast {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to process article %s: %w", out.link, out.err)
					cancel()
				}
				continue
			}
			if !errors.Is(out.err, context.Canceled) {
				logger.ErrorWithErr(ctx, "Skipping article", out.err, "url", out.link)
			}
			res.Skipped++
			out.assoc = types.None[[]types.SymbolScores]()
		} else if !out.assoc.IsPresent() {
			res.Absent++
		}

		pending[out.index] = out.assoc
		for {
			a, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			agg.Merge(a)
			next++
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Sentence scores cached", "sentences", scorer.Len(), "hits", scorer.Hits())
	return agg.Observations(), nil
}

func (r *Runner) worker(ctx context.Context, scorer interfaces.SentimentScorer, links []string, jobs <-chan int, results chan<- articleResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range jobs {
		out := articleResult{index: i, link: links[i]}
		if err := ctx.Err(); err != nil {
			out.err = err
			results <- out
			continue
		}

		data, err := r.articles.Load(ctx, links[i])
		if err != nil {
			out.err = err
			results <- out
			continue
		}

		out.assoc, out.err = Associate(ctx, scorer, data.Symbols, data.Body)
		results <- out
	}
}

func dropped(all, kept *types.Feelings) []types.Symbol {
	out := []types.Symbol{}
	for _, sym := range all.Symbols() {
		if _, ok := kept.Get(sym); !ok {
			out = append(out, sym)
		}
	}
	return out
}
