package article

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
)

// Fetcher downloads article pages with colly, sharing one rate limiter across
// all concurrent callers.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
}

var _ interfaces.ArticleFetcher = (*Fetcher)(nil)

// FetcherOption configures the Fetcher.
type FetcherOption func(*Fetcher)

// WithRateLimit caps requests per second across every worker.
func WithRateLimit(requestsPerSecond float64, burst int) FetcherOption {
	return func(f *Fetcher) {
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

func NewFetcher(timeout time.Duration, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the page HTML. Network failures and non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, link string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		if f.userAgent != "" {
			r.Headers.Set("User-Agent", f.userAgent)
		}
	})

	var body []byte
	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	logger.Debug(ctx, "Fetching article", "url", link)
	if err := c.Visit(link); err != nil {
		if fetchErr != nil {
			return "", fmt.Errorf("failed to fetch %s: %w", link, fetchErr)
		}
		return "", fmt.Errorf("failed to visit %s: %w", link, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", link, fetchErr)
	}
	return string(body), nil
}
