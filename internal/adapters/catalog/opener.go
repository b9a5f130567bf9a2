package catalog

import (
	"context"
	"path/filepath"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.CatalogOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the store for spec.Driver. SQLite stores hold a connection and
// implement io.Closer.
func (o *Opener) Open(ctx context.Context, root string, spec domain.CatalogSpec) (ports.CatalogStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch spec.Driver {
	case "", domain.CatalogDriverCSV:
		return NewCSVStore(resolve(root, spec.Products), resolve(root, spec.Workers)), nil
	case domain.CatalogDriverSQLite:
		return OpenSQLite(resolve(root, spec.Database))
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownCatalogDriver, "cannot open catalog"), "driver", string(spec.Driver))
	}
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
