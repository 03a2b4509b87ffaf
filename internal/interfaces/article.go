package interfaces

import (
	"context"

	"ticker-sentiment/internal/types"
)

// ArticleFetcher retrieves the raw HTML of an article.
type ArticleFetcher interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// ArticleExtractor pulls the mentioned symbols and body text out of article HTML.
// Missing markup yields absent values, not errors.
type ArticleExtractor interface {
	Extract(html string) (types.ArticleData, error)
}

// ArticleSource fetches and extracts one article.
type ArticleSource interface {
	Load(ctx context.Context, link string) (types.ArticleData, error)
}
