package article

import (
	"context"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/types"
)

// Source fetches an article and extracts its symbols and body.
type Source struct {
	fetcher   interfaces.ArticleFetcher
	extractor interfaces.ArticleExtractor
}

var _ interfaces.ArticleSource = (*Source)(nil)

func NewSource(fetcher interfaces.ArticleFetcher, extractor interfaces.ArticleExtractor) *Source {
	return &Source{fetcher: fetcher, extractor: extractor}
}

func (s *Source) Load(ctx context.Context, link string) (types.ArticleData, error) {
	page, err := s.fetcher.Fetch(ctx, link)
	if err != nil {
		return types.ArticleData{}, err
	}
	data, err := s.extractor.Extract(page)
	if err != nil {
		return types.ArticleData{}, err
	}
	data.URL = link
	return data, nil
}
