package articleobs

import (
	"context"
	"errors"
	"testing"

	"ticker-sentiment/internal/types"
)

type stubSource struct {
	data types.ArticleData
	err  error
}

func (s stubSource) Load(context.Context, string) (types.ArticleData, error) {
	return s.data, s.err
}

func TestWrap(t *testing.T) {
	want := types.ArticleData{URL: "http://a", Symbols: types.Some([]types.Symbol{"AAPL"}), Body: types.Some("AAPL rose.")}
	got, err := Wrap(stubSource{data: want}).Load(context.Background(), "http://a")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.URL != want.URL || got.Body.OrElse("") != "AAPL rose." {
		t.Errorf("Expected data to pass through, got %+v", got)
	}

	boom := errors.New("boom")
	if _, err := Wrap(stubSource{err: boom}).Load(context.Background(), "http://a"); !errors.Is(err, boom) {
		t.Errorf("Expected error to pass through, got %v", err)
	}
}
