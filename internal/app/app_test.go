package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/adapters/telemetry"
	"go.trai.ch/taskmill/internal/app"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports/mocks"
	"go.trai.ch/taskmill/internal/engine/simulator"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockPlanLoader
	opener    *mocks.MockCatalogOpener
	store     *mocks.MockCatalogStore
	hasher    *mocks.MockHasher
	runs      *mocks.MockRunStore
	renderers *mocks.MockRendererFactory
	renderer  *mocks.MockRenderer
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockPlanLoader(ctrl),
		opener:    mocks.NewMockCatalogOpener(ctrl),
		store:     mocks.NewMockCatalogStore(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		runs:      mocks.NewMockRunStore(ctrl),
		renderers: mocks.NewMockRendererFactory(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       &bytes.Buffer{},
	}
	f.app = app.New(
		f.loader, f.opener, simulator.New(), f.hasher, f.runs, f.renderers, f.logger, telemetry.NewNoOp(),
	).WithOutput(f.out).WithClock(func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	})

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return f
}

func boxPlan() *domain.Plan {
	return &domain.Plan{
		Catalog:  domain.CatalogSpec{Driver: domain.CatalogDriverCSV, Products: "products.csv", Workers: "workers.csv"},
		Order:    domain.Order{"Box": 5},
		Settings: domain.DefaultSettings(),
	}
}

func boxCatalog() *domain.Catalog {
	return &domain.Catalog{
		Tasks: []domain.TaskRow{
			{Product: "Box", Description: "Fold", ResultID: "T1", TimePerPieceSeconds: 10,
				Skills: domain.SkillLevels{domain.SkillBending: 100}},
			{Product: "Box", Description: "Glue", ResultID: "T2", Requirements: []string{"T1"}, TimePerPieceSeconds: 20,
				Skills: domain.SkillLevels{domain.SkillGluing: 100}},
		},
		Workers: []domain.WorkerRow{
			{Name: "Alice", Skills: domain.SkillLevels{domain.SkillBending: 100, domain.SkillGluing: 100}},
		},
	}
}

// expectCatalog sets up plan loading and one catalog load.
func (f *fixture) expectCatalog(plan *domain.Plan, catalog *domain.Catalog) {
	f.loader.EXPECT().Load(".").Return(plan, nil)
	f.opener.EXPECT().Open(gomock.Any(), ".", plan.Catalog).Return(f.store, nil)
	f.store.EXPECT().Load(gomock.Any()).Return(catalog, nil)
}

func TestApp_Run_Success(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("grid").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Get(".", "fp-1").Return(nil, nil)

	var stored domain.RunRecord
	f.runs.EXPECT().Put(".", gomock.Any()).DoAndReturn(func(_ string, rec domain.RunRecord) error {
		stored = rec
		return nil
	})

	var rendered *domain.Result
	f.renderer.EXPECT().Render(f.out, gomock.Any()).DoAndReturn(func(_ any, result *domain.Result) error {
		rendered = result
		return nil
	})

	err := f.app.Run(context.Background(), app.RunOptions{Format: "grid"})
	require.NoError(t, err)

	require.NotNil(t, rendered)
	assert.Equal(t, domain.RunStatusDone, rendered.Status)
	assert.Equal(t, 5, rendered.Inventory.Count("T1"))
	assert.Equal(t, 5, rendered.Inventory.Count("T2"))

	assert.Equal(t, "fp-1", stored.Fingerprint)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), stored.CreatedAt)
	assert.Same(t, rendered, stored.Result)
}

func TestApp_Run_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)

	tel := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	a := app.New(f.loader, f.opener, simulator.New(), f.hasher, f.runs, f.renderers, f.logger, tel).WithOutput(f.out)

	ctx := context.Background()
	tel.EXPECT().Record(gomock.Any(), "run").Return(ctx, vertex)
	tel.EXPECT().Record(gomock.Any(), "load catalog", gomock.Any()).Return(ctx, vertex)
	tel.EXPECT().Record(gomock.Any(), "simulate").Return(ctx, vertex)
	vertex.EXPECT().Log(domain.LogLevelInfo, gomock.Any())
	vertex.EXPECT().Cached()
	vertex.EXPECT().Complete(nil).Times(3)

	f.expectCatalog(boxPlan(), boxCatalog())
	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)

	cached := &domain.Result{Status: domain.RunStatusDone, FinalDay: 1}
	f.runs.EXPECT().Get(".", "fp-1").Return(&domain.RunRecord{ID: "run-1", Fingerprint: "fp-1", Result: cached}, nil)
	f.renderer.EXPECT().Render(f.out, cached).Return(nil)

	require.NoError(t, a.Run(ctx, app.RunOptions{}))
}

func TestApp_Run_NoCache(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("json").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Put(".", gomock.Any()).Return(nil)
	f.renderer.EXPECT().Render(f.out, gomock.Any()).Return(nil)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Format: "json", NoCache: true}))
}

func TestApp_Run_StoreFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Get(".", "fp-1").Return(nil, nil)
	f.runs.EXPECT().Put(".", gomock.Any()).Return(errors.New("disk full"))
	f.logger.EXPECT().Error(gomock.Any())
	f.renderer.EXPECT().Render(f.out, gomock.Any()).Return(nil)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{}))
}

func TestApp_Run_UnreadableCacheIsLogged(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Get(".", "fp-1").Return(nil, errors.New("failed to unmarshal run cache"))
	f.runs.EXPECT().Put(".", gomock.Any()).Return(nil)
	f.logger.EXPECT().Error(gomock.Any())

	var rendered *domain.Result
	f.renderer.EXPECT().Render(f.out, gomock.Any()).DoAndReturn(func(_ any, result *domain.Result) error {
		rendered = result
		return nil
	})

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{}))
	require.NotNil(t, rendered)
	assert.Equal(t, domain.RunStatusDone, rendered.Status)
}

func TestApp_Run_CacheFollowsRoot(t *testing.T) {
	f := newFixture(t)
	a := f.app.WithRoot("plant")

	plan := boxPlan()
	f.loader.EXPECT().Load("plant").Return(plan, nil)
	f.opener.EXPECT().Open(gomock.Any(), "plant", plan.Catalog).Return(f.store, nil)
	f.store.EXPECT().Load(gomock.Any()).Return(boxCatalog(), nil)

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Get("plant", "fp-1").Return(nil, nil)
	f.runs.EXPECT().Put("plant", gomock.Any()).Return(nil)
	f.renderer.EXPECT().Render(f.out, gomock.Any()).Return(nil)

	require.NoError(t, a.Run(context.Background(), app.RunOptions{}))
}

func TestApp_Run_Aborted(t *testing.T) {
	f := newFixture(t)

	catalog := boxCatalog()
	catalog.Tasks[0].Requirements = []string{"T9"}
	f.expectCatalog(boxPlan(), catalog)

	// Missing prerequisite T9 is reported but does not stop the run.
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-1", nil)
	f.runs.EXPECT().Get(".", "fp-1").Return(nil, nil)
	f.runs.EXPECT().Put(".", gomock.Any()).Return(nil)

	var rendered *domain.Result
	f.renderer.EXPECT().Render(f.out, gomock.Any()).DoAndReturn(func(_ any, result *domain.Result) error {
		rendered = result
		return nil
	})

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrSimulationAborted)

	require.NotNil(t, rendered)
	assert.Equal(t, domain.RunStatusAborted, rendered.Status)
	assert.Equal(t, 0, rendered.Inventory.Total())
}

func TestApp_Run_Overrides(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)

	var hashed *domain.Plan
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).DoAndReturn(
		func(plan *domain.Plan, _ *domain.Catalog) (string, error) {
			hashed = plan
			return "fp-2", nil
		})
	f.runs.EXPECT().Put(".", gomock.Any()).Return(nil)
	f.renderer.EXPECT().Render(f.out, gomock.Any()).Return(nil)

	err := f.app.Run(context.Background(), app.RunOptions{
		Order:          map[string]int{"Box": 2},
		Workers:        []string{"Alice"},
		SlotMinutes:    15,
		WorkdayMinutes: 240,
		Gating:         "any-produced",
		NoCache:        true,
	})
	require.NoError(t, err)

	require.NotNil(t, hashed)
	assert.Equal(t, domain.Order{"Box": 2}, hashed.Order)
	assert.Equal(t, []string{"Alice"}, hashed.Workers)
	assert.Equal(t, domain.Settings{SlotMinutes: 15, WorkdayMinutes: 240, Gating: domain.GatingAnyProduced}, hashed.Settings)
}

func TestApp_Run_InvalidOverrides(t *testing.T) {
	tests := []struct {
		name    string
		opts    app.RunOptions
		wantErr error
	}{
		{"negative quantity", app.RunOptions{Order: map[string]int{"Box": -1}}, domain.ErrInvalidOrder},
		{"unknown gating", app.RunOptions{Gating: "eventually"}, domain.ErrUnknownGatingPolicy},
		{"uneven slots", app.RunOptions{SlotMinutes: 45}, domain.ErrInvalidConfig},
		{"workday past midnight", app.RunOptions{WorkdayMinutes: 17 * 60}, domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loader.EXPECT().Load(".").Return(boxPlan(), nil)

			err := f.app.Run(context.Background(), tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_Run_UnknownWorker(t *testing.T) {
	f := newFixture(t)
	f.expectCatalog(boxPlan(), boxCatalog())

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-3", nil)

	err := f.app.Run(context.Background(), app.RunOptions{Workers: []string{"Mallory"}, NoCache: true})
	require.ErrorIs(t, err, domain.ErrUnknownWorker)
}

func TestApp_Run_PlanLoaderError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, errors.New("plan load error"))

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load plan")
}

func TestApp_Run_CatalogError(t *testing.T) {
	f := newFixture(t)
	plan := boxPlan()
	f.loader.EXPECT().Load(".").Return(plan, nil)
	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.opener.EXPECT().Open(gomock.Any(), ".", plan.Catalog).Return(f.store, nil)
	f.store.EXPECT().Load(gomock.Any()).Return(nil, errors.New("bad header"))

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load catalog")
}

func TestApp_Run_UnknownFormat(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(boxPlan(), nil)
	f.renderers.EXPECT().Renderer("yaml").Return(nil, domain.ErrUnknownFormat)

	err := f.app.Run(context.Background(), app.RunOptions{Format: "yaml"})
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestApp_Run_NoCapacity(t *testing.T) {
	f := newFixture(t)
	catalog := boxCatalog()
	catalog.Workers = nil
	f.expectCatalog(boxPlan(), catalog)

	f.renderers.EXPECT().Renderer("").Return(f.renderer, nil)
	f.hasher.EXPECT().ComputeFingerprint(gomock.Any(), gomock.Any()).Return("fp-4", nil)
	f.runs.EXPECT().Get(".", "fp-4").Return(nil, nil)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrNoCapacity)
}
