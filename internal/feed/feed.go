package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"ticker-sentiment/internal/api"
	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
)

// Source downloads a syndication feed and lists its article links.
type Source struct {
	client *api.Client
}

var _ interfaces.FeedSource = (*Source)(nil)

func NewSource(timeout time.Duration, userAgent string) *Source {
	return &Source{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithHeader("User-Agent", userAgent),
			api.WithHeader("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8"),
			api.WithLogging(true),
		),
	}
}

// Fetch returns an error only when the feed cannot be downloaded. A body that
// does not parse as a feed is reported through FeedResult.Malformed.
func (s *Source) Fetch(ctx context.Context, feedURL string) (interfaces.FeedResult, error) {
	resp, err := s.client.GET(ctx, feedURL)
	if err != nil {
		return interfaces.FeedResult{}, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return interfaces.FeedResult{}, fmt.Errorf("feed returned status: %d", resp.StatusCode)
	}
	return Parse(ctx, resp.Body), nil
}

// Parse extracts item links from raw feed content. Items without a link
// are skipped. Malformed is decided by a strict XML pass and is independent
// of the links: a badly formed feed still yields every item the lenient
// parser recovers.
func Parse(ctx context.Context, body []byte) interfaces.FeedResult {
	res := interfaces.FeedResult{Links: []string{}}
	if gofeed.DetectFeedType(bytes.NewReader(body)) != gofeed.FeedTypeJSON {
		if err := checkXML(body); err != nil {
			logger.Debug(ctx, "Feed is not well-formed XML", "error", err)
			res.Malformed = true
		}
	}

	f, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		logger.Debug(ctx, "Feed did not parse, salvaging item links", "error", err)
		res.Malformed = true
		res.Links = salvageLinks(body)
		return res
	}

	res.Title = f.Title
	for _, item := range f.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			logger.Debug(ctx, "Feed item has no link", "title", item.Title)
			continue
		}
		res.Links = append(res.Links, link)
	}
	return res
}
