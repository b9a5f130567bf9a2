// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/taskmill/internal/core/domain"
)

// CatalogStore provides a read-only snapshot of the task and worker catalogs.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogStore interface {
	// Load reads both catalogs.
	Load(ctx context.Context) (*domain.Catalog, error)
}

// CatalogImporter replaces the contents of a writable catalog store.
type CatalogImporter interface {
	// Import replaces both catalogs atomically.
	Import(ctx context.Context, catalog *domain.Catalog) error
}

// CatalogOpener selects and opens a catalog store.
type CatalogOpener interface {
	// Open returns the store described by spec. Relative paths are resolved against root.
	Open(ctx context.Context, root string, spec domain.CatalogSpec) (CatalogStore, error)
}
