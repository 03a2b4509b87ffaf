package interfaces

import "context"

// FeedResult is the list of article links found in a syndication feed.
// Malformed is set when the feed did not parse as RSS/Atom/JSON feed.
type FeedResult struct {
	Title     string
	Links     []string
	Malformed bool
}

type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) (FeedResult, error)
}
