package articleobs

import (
	"context"
	"time"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/logger"
	"ticker-sentiment/internal/trace"
	"ticker-sentiment/internal/types"
)

// observableSource wraps an ArticleSource with logging and tracing
type observableSource struct {
	inner interfaces.ArticleSource
}

// Wrap wraps an ArticleSource with observability middleware
func Wrap(src interfaces.ArticleSource) interfaces.ArticleSource {
	return &observableSource{inner: src}
}

// Load wraps the Load method with logging and tracing
func (o *observableSource) Load(ctx context.Context, link string) (types.ArticleData, error) {
	ctx, span := trace.StartSpan(ctx, "article.Load")
	defer span.End()

	start := time.Now()
	data, err := o.inner.Load(ctx, link)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		span.RecordError(err)
		logger.Debug(ctx, "Article load failed", "url", link, "duration_ms", durationMS, "error", err)
		return data, err
	}

	syms, hasSymbols := data.Symbols.Get()
	body, hasBody := data.Body.Get()
	logger.Debug(ctx, "Article loaded",
		"url", link,
		"duration_ms", durationMS,
		"has_symbols", hasSymbols,
		"symbols", len(syms),
		"has_body", hasBody,
		"body_chars", len(body),
	)
	return data, nil
}
