package score

import "github.com/Capston-25-1/Youtube-FactChecker/internal/model"

// Band is a labeled confidence interval over the 0-100 score domain.
// The band table partitions [0, 100] into half-open intervals [Min, Max),
// except the last band which also includes 100.
type Band struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// Unclassifiable is returned for scores outside [0, 100], including the
// indeterminate sentinel. Callers render it as "not determinable" rather
// than treating it as a band.
var Unclassifiable = Band{
	Min:         -1,
	Max:         -1,
	Label:       "not determinable",
	Description: "The claim could not be matched against enough evidence to judge.",
}

var bands = []Band{
	{0, 20, "very low", "Available evidence contradicts the claim."},
	{20, 40, "low", "Evidence leans against the claim."},
	{40, 60, "mixed", "Evidence is split or inconclusive."},
	{60, 80, "high", "Evidence leans toward the claim."},
	{80, 100, "very high", "Available evidence supports the claim."},
}

// Bands returns the ordered band table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Classify maps a 0-100 score to its confidence band. The boolean is false
// when the score falls outside [0, 100]; the returned band is then
// Unclassifiable.
func Classify(score float64) (Band, bool) {
	for i, b := range bands {
		if score >= b.Min && score < b.Max {
			return b, true
		}
		// The top band is closed at 100.
		if i == len(bands)-1 && score == b.Max {
			return b, true
		}
	}
	return Unclassifiable, false
}

// FromFactScore converts the analysis service's fraction-true score to the
// 0-100 classification domain. The indeterminate sentinel and anything
// outside [0, 1] map to -1, which Classify rejects as unclassifiable.
func FromFactScore(factScore float64) float64 {
	if factScore < 0 || factScore > 1 {
		return -1
	}
	return factScore * 100
}

// Label is a convenience for rendering: the band label for an analysis
// result, or the unclassifiable label when the score cannot be placed.
func Label(res model.AnalysisResult) string {
	if res.Failed {
		return Unclassifiable.Label
	}
	band, _ := Classify(FromFactScore(res.FactScore))
	return band.Label
}
