package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker-sentiment/internal/pipeline"
	"ticker-sentiment/internal/types"
)

func TestWriteText(t *testing.T) {
	ranked := []types.RankedEntry{
		{
			Symbol: "XYZ",
			Feeling: types.FeelingSummary{
				Polarity:     types.Summary{Mean: 0.13333, Deviation: 0.20817, Count: 3},
				Subjectivity: types.Summary{Mean: 0.5, Deviation: 0.1, Count: 3},
			},
			Score: 0.5092,
		},
		{
			Symbol: "ABC",
			Feeling: types.FeelingSummary{
				Polarity:     types.Summary{Mean: -0.25, Deviation: 0, Count: 1},
				Subjectivity: types.Summary{Mean: 0.4, Deviation: 0, Count: 1},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, ranked))

	want := "STOCK SYMBOL: XYZ\n" +
		"\tSENTIMENT: mean(+0.133), stdev(0.208), N(3.000)\n" +
		"\tCERTAINTY: mean(+0.500), stdev(0.100), N(3.000)\n" +
		"STOCK SYMBOL: ABC\n" +
		"\tSENTIMENT: mean(-0.250), stdev(0.000), N(1.000)\n" +
		"\tCERTAINTY: mean(+0.400), stdev(0.000), N(1.000)\n" +
		"DONE\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, nil))
	assert.Equal(t, "DONE\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	res := &pipeline.Result{
		FeedURL:  "http://feed",
		Articles: 2,
		Dropped:  []types.Symbol{"ABC"},
		Ranked: []types.RankedEntry{{
			Symbol:  "XYZ",
			Feeling: types.FeelingSummary{Polarity: types.Summary{Mean: 0.2, Count: 2}},
			Score:   0.4,
		}},
	}
	require.NoError(t, WriteJSON(path, res))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "http://feed", got["feed_url"])
	assert.EqualValues(t, 2, got["articles"])
	assert.Len(t, got["ranked"], 1)
}
