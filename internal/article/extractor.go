package article

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"ticker-sentiment/internal/interfaces"
	"ticker-sentiment/internal/types"
)

// Selectors locate the tickers region, the symbols inside it and the article body.
type Selectors struct {
	Tickers string
	Symbol  string
	Body    string
}

// DefaultSelectors match MarketWatch article markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Tickers: ".list--tickers",
		Symbol:  ".symbol",
		Body:    "#js-article__body",
	}
}

type Extractor struct {
	sel Selectors
}

var _ interfaces.ArticleExtractor = (*Extractor)(nil)

func NewExtractor(sel Selectors) *Extractor {
	return &Extractor{sel: sel}
}

// Extract parses page HTML. A missing tickers region or body element gives an
// absent value rather than an error.
func (e *Extractor) Extract(page string) (types.ArticleData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return types.ArticleData{}, fmt.Errorf("failed to parse article HTML: %w", err)
	}
	return types.ArticleData{
		Symbols: e.symbols(doc),
		Body:    e.body(doc),
	}, nil
}

func (e *Extractor) symbols(doc *goquery.Document) types.Optional[[]types.Symbol] {
	region := doc.Find(e.sel.Tickers).First()
	if region.Length() == 0 {
		return types.None[[]types.Symbol]()
	}

	syms := []types.Symbol{}
	region.Find(e.sel.Symbol).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			syms = append(syms, types.Symbol(text))
		}
	})
	return types.Some(syms)
}

func (e *Extractor) body(doc *goquery.Document) types.Optional[string] {
	found := doc.Find(e.sel.Body).First()
	if found.Length() == 0 {
		return types.None[string]()
	}
	return types.Some(Normalize(joinText(found.Nodes[0])))
}

// joinText collects every text node under n, trimmed, joined by one space.
// Script and style contents are skipped.
func joinText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
