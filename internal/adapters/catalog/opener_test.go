package catalog_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/adapters/catalog"
	"go.trai.ch/taskmill/internal/core/domain"
)

func TestOpener_Open(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "products.csv", productsCSV)
	writeFile(t, dir, "workers.csv", workersCSV)

	t.Run("csv resolves relative paths", func(t *testing.T) {
		store, err := catalog.NewOpener().Open(ctx, dir, domain.CatalogSpec{
			Driver:   domain.CatalogDriverCSV,
			Products: "products.csv",
			Workers:  "workers.csv",
		})
		require.NoError(t, err)
		assert.IsType(t, &catalog.CSVStore{}, store)

		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, c.Tasks, 4)
	})

	t.Run("sqlite is closable", func(t *testing.T) {
		store, err := catalog.NewOpener().Open(ctx, dir, domain.CatalogSpec{
			Driver:   domain.CatalogDriverSQLite,
			Database: "taskmill.db",
		})
		require.NoError(t, err)
		closer, ok := store.(io.Closer)
		require.True(t, ok)
		require.NoError(t, closer.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := catalog.NewOpener().Open(ctx, dir, domain.CatalogSpec{Driver: "postgres"})
		require.ErrorIs(t, err, domain.ErrUnknownCatalogDriver)
	})
}
