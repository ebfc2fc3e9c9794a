package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes decoded sentences as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes results as a JSON array.
func (r *JSONRenderer) Render(results []Result) {
	if results == nil {
		results = []Result{}
	}
	json.NewEncoder(r.W).Encode(results)
}

// compile-time interface check
var _ ResultRenderer = (*JSONRenderer)(nil)
