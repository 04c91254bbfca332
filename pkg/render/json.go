package render

import (
	"encoding/json"
)

// JSON renders patterns as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string   `json:"version"`
	Shape   string   `json:"shape"`
	Label   string   `json:"label"`
	Rows    int      `json:"rows"`
	Symbol  string   `json:"symbol"`
	Lines   []string `json:"lines"`
	Text    string   `json:"text"`
}

// Render formats the pattern as indented JSON.
func (j *JSON) Render(p Pattern) string {
	data, err := json.MarshalIndent(Document(p), "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}

// Document returns the value Render marshals, for callers that encode it themselves.
func Document(p Pattern) any {
	lines := p.Result.Lines
	if lines == nil {
		lines = []string{}
	}
	return jsonOutput{
		Version: "1.0",
		Shape:   string(p.Request.Shape),
		Label:   p.Request.Shape.Label(),
		Rows:    p.Request.Rows,
		Symbol:  string(p.Request.Symbol),
		Lines:   lines,
		Text:    p.Result.String(),
	}
}
