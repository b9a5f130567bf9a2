package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/adapters/config"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writePlan(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
catalog:
  driver: sqlite
  database: data/shop.db
order:
  Box: 5
  Lid: 0
workers: [Alice, Bob]
slot_minutes: 15
workday_minutes: 420
gating: any-produced
`
	ctrl := gomock.NewController(t)
	tmpDir := t.TempDir()
	writePlan(t, tmpDir, content)

	plan, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, domain.CatalogSpec{
		Driver:   domain.CatalogDriverSQLite,
		Products: config.DefaultProductsFile,
		Workers:  config.DefaultWorkersFile,
		Database: "data/shop.db",
	}, plan.Catalog)
	assert.Equal(t, domain.Order{"Box": 5, "Lid": 0}, plan.Order)
	assert.Equal(t, []string{"Alice", "Bob"}, plan.Workers)
	assert.Equal(t, domain.Settings{
		SlotMinutes:    15,
		WorkdayMinutes: 420,
		Gating:         domain.GatingAnyProduced,
	}, plan.Settings)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	plan, err := config.NewLoader(mockLogger).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlan(), plan)
	assert.Equal(t, domain.DefaultSettings(), plan.Settings)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	tmpDir := t.TempDir()
	writePlan(t, tmpDir, "")

	plan, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlan(), plan)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errIs       error
		errContains string
	}{
		{
			name:        "unknown key",
			content:     "orders:\n  Box: 5\n",
			errContains: "failed to parse plan file",
		},
		{
			name:        "unsupported version",
			content:     "version: \"2\"\n",
			errIs:       domain.ErrInvalidConfig,
		},
		{
			name:        "unknown driver",
			content:     "catalog:\n  driver: postgres\n",
			errIs:       domain.ErrUnknownCatalogDriver,
		},
		{
			name:        "negative quantity",
			content:     "order:\n  Box: -3\n",
			errIs:       domain.ErrInvalidOrder,
		},
		{
			name:        "unknown gating",
			content:     "gating: eventually\n",
			errIs:       domain.ErrUnknownGatingPolicy,
		},
		{
			name:        "workday not divisible",
			content:     "slot_minutes: 45\n",
			errIs:       domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tmpDir := t.TempDir()
			writePlan(t, tmpDir, tt.content)

			_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(tmpDir)
			require.Error(t, err)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoad_ErrorCarriesPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	tmpDir := t.TempDir()
	writePlan(t, tmpDir, "gating: eventually\n")

	_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(tmpDir)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, filepath.Join(tmpDir, config.DefaultFilename), zErr.Metadata()["path"])
	assert.Equal(t, "eventually", zErr.Metadata()["policy"])
}
