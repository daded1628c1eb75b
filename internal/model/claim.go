package model

// Claim represents a single factual assertion extracted from a comment,
// together with the search keywords the extraction service derived for it.
type Claim struct {
	Text     string   `json:"text"`               // The claim text itself
	Keywords []string `json:"keywords,omitempty"` // Search keywords for evidence lookup
}

// HasKeywords reports whether the claim carries at least one non-empty keyword.
// Claims without keywords cannot be fact-checked and are ignored by the pipeline.
func (c Claim) HasKeywords() bool {
	for _, k := range c.Keywords {
		if k != "" {
			return true
		}
	}
	return false
}

// VideoContext is an immutable snapshot of the watch-page metadata sent
// alongside every extraction batch. It is rebuilt per flush because the
// page may have navigated between flushes.
type VideoContext struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
}

// ItemClaims is the claim set the extraction service returned for one
// comment of a batch. Index refers to the position of the comment in the
// submitted batch, not to any page-level ordering.
type ItemClaims struct {
	Index  int     `json:"index"`
	Claims []Claim `json:"claims"`
}

// BatchResult is the normalized result of one batch extraction call.
type BatchResult struct {
	Summary string       `json:"summary"`  // Video-level context summary
	PerItem []ItemClaims `json:"per_item"` // One entry per comment that yielded claims
}

// Empty reports whether the batch produced no usable claim sets.
func (b BatchResult) Empty() bool {
	return len(b.PerItem) == 0
}
