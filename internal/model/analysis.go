package model

// IndeterminateScore is the sentinel fact score for claims the analysis
// service could not judge. Valid scores are the fraction-true in [0, 1].
const IndeterminateScore = -1

// RelatedArticle is an evidence article the analysis service matched to a claim.
type RelatedArticle struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	CoreSentence string `json:"core_sentence,omitempty"` // Most relevant sentence, when available
}

// AnalysisResult is the outcome of fact-checking a single claim.
// A failed call is represented with Failed set rather than an error so that
// one bad claim never hides its siblings in the same fan-out.
type AnalysisResult struct {
	Claim           string           `json:"claim"`
	FactScore       float64          `json:"fact_score"` // Fraction-true in [0,1], or IndeterminateScore
	Explanation     string           `json:"explanation,omitempty"`
	RelatedArticles []RelatedArticle `json:"related_articles,omitempty"`
	Failed          bool             `json:"failed,omitempty"`
}

// FailedResult builds the placeholder result for a claim whose analysis
// call did not complete.
func FailedResult(claim string) AnalysisResult {
	return AnalysisResult{
		Claim:     claim,
		FactScore: IndeterminateScore,
		Failed:    true,
	}
}
