package model

import "time"

// Report is the complete result of one-shot checking of an item source.
type Report struct {
	SourceURL string       `json:"source_url,omitempty"` // Page that was checked
	CheckedAt time.Time    `json:"checked_at"`
	Context   VideoContext `json:"video_context"`
	Summary   string       `json:"summary,omitempty"` // Extraction-service context summary

	Comments []CommentReport `json:"comments"`
}

// CommentReport holds the per-comment claim set and analysis results.
type CommentReport struct {
	Text    string           `json:"text"`
	Claims  []Claim          `json:"claims"`
	Results []AnalysisResult `json:"results,omitempty"`
}

// Checked counts the comments for which at least one claim was analyzed.
func (r *Report) Checked() int {
	n := 0
	for _, c := range r.Comments {
		if len(c.Results) > 0 {
			n++
		}
	}
	return n
}
