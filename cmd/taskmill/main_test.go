package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/app"
)

const productsCSV = `Product,Task,Result,Requirements,Bending,Gluing,Assembling,EdgeScrap,OpenPaper,QualityControl,TimePerPieceSeconds
Box,Fold,T1,NaN,100,0,0,0,0,0,10
Box,Glue,T2,T1,0,100,0,0,0,0,20
`

const blockedProductsCSV = `Product,Task,Result,Requirements,Bending,Gluing,Assembling,EdgeScrap,OpenPaper,QualityControl,TimePerPieceSeconds
Box,Fold,T1,T9,100,0,0,0,0,0,10
`

const workersCSV = `Worker,Bending,Gluing,Assembling,EdgeScrap,OpenPaper,QualityControl,FavoriteProduct1,FavoriteProduct2,FavoriteProduct3
Alice,100,100,0,0,0,0,Box,NaN,NaN
`

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		plan         string
		products     string
		runCache     string
		args         []string
		expectedExit int
	}{
		{
			name:         "Done",
			plan:         "version: \"1\"\norder:\n  Box: 5\n",
			args:         []string{"taskmill", "run", "--format", "json"},
			expectedExit: 0,
		},
		{
			name:         "Overrides",
			plan:         "order:\n  Box: 1\nworkers: [Alice]\n",
			args:         []string{"taskmill", "run", "--order", "Box=5", "--workday-minutes", "30", "--slot-minutes", "30", "--no-cache"},
			expectedExit: 0,
		},
		{
			name:         "Aborted",
			plan:         "order:\n  Box: 5\n",
			products:     blockedProductsCSV,
			args:         []string{"taskmill", "run"},
			expectedExit: 2,
		},
		{
			name:         "Unknown worker",
			plan:         "order:\n  Box: 5\n",
			args:         []string{"taskmill", "run", "--workers", "Mallory"},
			expectedExit: 1,
		},
		{
			name:         "Invalid plan",
			plan:         "order:\n  Box: 5\nshifts: 2\n",
			args:         []string{"taskmill", "validate"},
			expectedExit: 1,
		},
		{
			name:         "Corrupt run cache",
			plan:         "order:\n  Box: 5\n",
			runCache:     "{not json",
			args:         []string{"taskmill", "run"},
			expectedExit: 0,
		},
		{
			name:         "Version ignores run cache",
			runCache:     "{not json",
			args:         []string{"taskmill", "version"},
			expectedExit: 0,
		},
		{
			name:         "Validate",
			plan:         "",
			args:         []string{"taskmill", "validate"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			write(t, filepath.Join(tmpDir, "taskmill.yaml"), tt.plan)
			products := tt.products
			if products == "" {
				products = productsCSV
			}
			write(t, filepath.Join(tmpDir, "products.csv"), products)
			write(t, filepath.Join(tmpDir, "workers.csv"), workersCSV)
			if tt.runCache != "" {
				require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".taskmill"), 0o750))
				write(t, filepath.Join(tmpDir, ".taskmill", "runs.json"), tt.runCache)
			}

			originalWd, err := os.Getwd()
			require.NoError(t, err)
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args
			exitCode := run(func(a *app.App) {
				a.WithClock(func() time.Time {
					return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
				})
			})
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
