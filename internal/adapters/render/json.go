package render

import (
	"encoding/json"
	"io"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*JSON)(nil)

// JSON renders a result as an indented JSON document.
type JSON struct{}

// NewJSON creates a new JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// Render writes the result to w.
func (j *JSON) Render(w io.Writer, result *domain.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return zerr.Wrap(err, "failed to encode result")
	}
	return nil
}
