package llm

import (
	"fmt"
	"strings"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
	"github.com/Capston-25-1/Youtube-FactChecker/internal/remote"
)

// parseExtraction turns raw model output into a BatchResult. Models wrap
// JSON in markdown code fences despite instructions, so fences are stripped
// before decoding; decoding shares the remote client's shape normalization.
func parseExtraction(raw string, batchSize int) (model.BatchResult, error) {
	cleaned := stripFences(raw)

	result, err := remote.DecodeBatch([]byte(cleaned))
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("parse extraction JSON: %w", err)
	}

	// Drop hallucinated indexes the batch never contained.
	kept := result.PerItem[:0]
	for _, entry := range result.PerItem {
		if entry.Index >= 0 && entry.Index < batchSize {
			kept = append(kept, entry)
		}
	}
	result.PerItem = kept

	return result, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
