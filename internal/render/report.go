package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/score"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Summary prints a short report digest.
func Summary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "Checked: %s\n", report.Context.Title)
	fmt.Fprintf(w, "Comments: %d scanned, %d fact-checked\n", len(report.Comments), report.Checked())

	for _, c := range report.Comments {
		if len(c.Results) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n💬 %s\n", truncate(c.Text, 70))
		for _, res := range c.Results {
			if res.Failed {
				fmt.Fprintf(w, "   ✗ %s: check failed\n", truncate(res.Claim, 60))
				continue
			}
			fmt.Fprintf(w, "   • %s: %s\n", truncate(res.Claim, 60), score.Label(res))
		}
	}
}
