package ports

import (
	"io"

	"go.trai.ch/taskmill/internal/core/domain"
)

// Renderer writes a simulation result in a presentation format.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes the schedule, inventory and log of result to w.
	Render(w io.Writer, result *domain.Result) error
}

// RendererFactory resolves a renderer by format name.
type RendererFactory interface {
	// Renderer returns the renderer for format, or an error for an unknown format.
	Renderer(format string) (Renderer, error)
}
