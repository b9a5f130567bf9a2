// Package app implements the application layer for taskmill.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/taskmill/internal/engine/simulator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	planLoader ports.PlanLoader
	opener     ports.CatalogOpener
	simulator  *simulator.Simulator
	hasher     ports.Hasher
	store      ports.RunStore
	renderers  ports.RendererFactory
	logger     ports.Logger
	telemetry  ports.Telemetry

	root  string
	out   io.Writer
	now   func() time.Time
	newID func() string
}

// New creates a new App instance.
func New(
	loader ports.PlanLoader,
	opener ports.CatalogOpener,
	sim *simulator.Simulator,
	hasher ports.Hasher,
	store ports.RunStore,
	renderers ports.RendererFactory,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		planLoader: loader,
		opener:     opener,
		simulator:  sim,
		hasher:     hasher,
		store:      store,
		renderers:  renderers,
		logger:     logger,
		telemetry:  telemetry,
		root:       ".",
		out:        os.Stdout,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithOutput sets the writer results are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithRoot sets the directory the plan file and relative catalog paths are resolved against.
func (a *App) WithRoot(root string) *App {
	a.root = root
	return a
}

// WithClock sets the time source used to stamp run records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// RunOptions override plan values for one run. Zero values keep the plan's value.
type RunOptions struct {
	// Order quantities are merged into the plan's order.
	Order          map[string]int
	Workers        []string
	SlotMinutes    int
	WorkdayMinutes int
	Gating         string
	Format         string
	NoCache        bool
}

// Run simulates the plan and renders the result. An ABORTED run is rendered
// and then reported as ErrSimulationAborted.
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	plan, err := a.loadPlan()
	if err != nil {
		return err
	}
	if err := applyOverrides(plan, opts); err != nil {
		return err
	}

	renderer, err := a.renderers.Renderer(opts.Format)
	if err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, "run")
	defer func() { vertex.Complete(err) }()

	catalog, err := a.loadCatalog(ctx, plan.Catalog)
	if err != nil {
		return err
	}
	a.checkPrerequisites(catalog)

	fingerprint, err := a.hasher.ComputeFingerprint(plan, catalog)
	if err != nil {
		return zerr.Wrap(err, "failed to compute run fingerprint")
	}

	result, err := a.simulate(ctx, plan, catalog, fingerprint, opts.NoCache)
	if err != nil {
		return err
	}

	if err := renderer.Render(a.out, result); err != nil {
		return zerr.Wrap(err, "failed to render result")
	}

	a.logger.Info(fmt.Sprintf("run finished with status %s on day %d", result.Status, result.FinalDay))
	if !result.Done() {
		err := zerr.With(zerr.Wrap(domain.ErrSimulationAborted, "run did not finish"), "final_day", result.FinalDay)
		return zerr.With(err, "elapsed_minutes", result.ElapsedMinutes)
	}
	return nil
}

func (a *App) loadPlan() (*domain.Plan, error) {
	plan, err := a.planLoader.Load(a.root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load plan")
	}
	return plan, nil
}

func applyOverrides(plan *domain.Plan, opts RunOptions) error {
	if plan.Order == nil {
		plan.Order = domain.Order{}
	}
	for product, qty := range opts.Order {
		plan.Order[product] = qty
	}
	if _, err := plan.Order.Lines(); err != nil {
		return err
	}
	if len(opts.Workers) > 0 {
		plan.Workers = opts.Workers
	}
	if opts.SlotMinutes != 0 {
		plan.Settings.SlotMinutes = opts.SlotMinutes
	}
	if opts.WorkdayMinutes != 0 {
		plan.Settings.WorkdayMinutes = opts.WorkdayMinutes
	}
	if opts.Gating != "" {
		gating, err := domain.ParseGatingPolicy(opts.Gating)
		if err != nil {
			return err
		}
		plan.Settings.Gating = gating
	}
	return plan.Settings.Validate()
}

// simulate returns the cached result for fingerprint, or runs the simulator and caches its result.
func (a *App) simulate(
	ctx context.Context,
	plan *domain.Plan,
	catalog *domain.Catalog,
	fingerprint string,
	noCache bool,
) (result *domain.Result, err error) {
	_, vertex := a.telemetry.Record(ctx, "simulate")
	defer func() { vertex.Complete(err) }()

	if !noCache {
		record, err := a.store.Get(a.root, fingerprint)
		if err != nil {
			// An unreadable cache only costs the replay.
			a.logger.Error(zerr.Wrap(err, "failed to read run cache"))
		}
		if record != nil && record.Result != nil {
			a.logger.Info(fmt.Sprintf("reusing cached run %s from %s", record.ID, record.CreatedAt.Format(time.RFC3339)))
			vertex.Cached()
			return record.Result, nil
		}
	}

	result, err = a.simulator.Run(ctx, plan, catalog)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		a.logger.Warn(warning)
		vertex.Log(domain.LogLevelWarn, warning)
	}
	writeDaySummaries(vertex.Stdout(), result)

	record := domain.RunRecord{
		ID:          a.newID(),
		Fingerprint: fingerprint,
		CreatedAt:   a.now().UTC(),
		Result:      result,
	}
	if err := a.store.Put(a.root, record); err != nil {
		// The result is still valid; only replay is lost.
		a.logger.Error(zerr.Wrap(err, "failed to store run"))
	}
	return result, nil
}

func writeDaySummaries(w io.Writer, result *domain.Result) {
	for day := 1; day <= result.FinalDay; day++ {
		cells := result.Schedule.DayCells(day)
		pieces := 0
		for _, c := range cells {
			pieces += c.Pieces
		}
		_, _ = fmt.Fprintf(w, "day %d: %d pcs in %d worker slots\n", day, pieces, len(cells))
	}
}
