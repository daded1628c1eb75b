package remote

import (
	"bytes"
	"encoding/json"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

// The extraction service has shipped three response shapes over time:
//
//	normalized object:  {"summary": s, "perItem": [{"index": i, "claims": [...]}]}
//	legacy object:      {"summary": s, "claims":  [{"index": i, "claims": [...]}]}
//	legacy bare array:  [{"index": i, "claims": [...]}]
//
// The legacy object nests "claims" inside a field also named "claims"; that
// collision is confined to the wire types. DecodeBatch flattens every shape
// into model.BatchResult, and claim entries accept both "text" and the
// older "claim" key.

type wireClaim struct {
	Text     string   `json:"text"`
	Claim    string   `json:"claim"`
	Keywords []string `json:"keywords"`
}

func (w wireClaim) toModel() model.Claim {
	text := w.Text
	if text == "" {
		text = w.Claim
	}
	return model.Claim{Text: text, Keywords: w.Keywords}
}

type wireItem struct {
	Index  int         `json:"index"`
	Claims []wireClaim `json:"claims"`
}

type wireEnvelope struct {
	Summary string     `json:"summary"`
	PerItem []wireItem `json:"perItem"`
	Claims  []wireItem `json:"claims"`
}

func DecodeBatch(data []byte) (model.BatchResult, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []wireItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return model.BatchResult{}, err
		}
		return flatten("", items), nil
	}

	var env wireEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return model.BatchResult{}, err
	}
	items := env.PerItem
	if items == nil {
		items = env.Claims
	}
	return flatten(env.Summary, items), nil
}

func flatten(summary string, items []wireItem) model.BatchResult {
	out := model.BatchResult{Summary: summary}
	for _, it := range items {
		claims := make([]model.Claim, 0, len(it.Claims))
		for _, c := range it.Claims {
			claims = append(claims, c.toModel())
		}
		out.PerItem = append(out.PerItem, model.ItemClaims{Index: it.Index, Claims: claims})
	}
	return out
}
