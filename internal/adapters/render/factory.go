package render

import (
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// FormatGrid selects the Grid renderer.
	FormatGrid = "grid"
	// FormatJSON selects the JSON renderer.
	FormatJSON = "json"
)

var _ ports.RendererFactory = (*Factory)(nil)

// Factory picks a renderer by format name.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Renderer returns the renderer for format. An empty format selects the grid.
func (f *Factory) Renderer(format string) (ports.Renderer, error) {
	switch format {
	case "", FormatGrid:
		return NewGrid(), nil
	case FormatJSON:
		return NewJSON(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "cannot select renderer"), "format", format)
	}
}
