package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ticker-sentiment/internal/pipeline"
	"ticker-sentiment/internal/types"
)

// DoneMarker ends every successful report.
const DoneMarker = "DONE"

func formatSummary(s types.Summary) string {
	return fmt.Sprintf("mean(%+5.3f), stdev(%5.3f), N(%5.3f)", s.Mean, s.Deviation, float64(s.Count))
}

// WriteText prints each ranked symbol with its polarity (SENTIMENT) and
// subjectivity (CERTAINTY) summaries, followed by the done marker.
func WriteText(w io.Writer, ranked []types.RankedEntry) error {
	for _, e := range ranked {
		_, err := fmt.Fprintf(w, "STOCK SYMBOL: %s\n\tSENTIMENT: %s\n\tCERTAINTY: %s\n",
			e.Symbol, formatSummary(e.Feeling.Polarity), formatSummary(e.Feeling.Subjectivity))
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, DoneMarker)
	return err
}

// WriteJSON saves the full run result to path.
func WriteJSON(path string, result *pipeline.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
