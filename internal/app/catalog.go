package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/taskmill/internal/engine/simulator"
	"go.trai.ch/zerr"
)

// loadCatalog opens the store described by spec and reads both catalogs.
func (a *App) loadCatalog(ctx context.Context, spec domain.CatalogSpec) (catalog *domain.Catalog, err error) {
	ctx, vertex := a.telemetry.Record(ctx, "load catalog", ports.WithInternal())
	defer func() { vertex.Complete(err) }()

	store, err := a.opener.Open(ctx, a.root, spec)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open catalog")
	}
	defer closeStore(store)

	catalog, err = store.Load(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load catalog"), "driver", string(spec.Driver))
	}

	msg := fmt.Sprintf("loaded %d task rows and %d workers from %s catalog",
		len(catalog.Tasks), len(catalog.Workers), driverName(spec.Driver))
	a.logger.Info(msg)
	vertex.Log(domain.LogLevelInfo, msg)
	return catalog, nil
}

// checkPrerequisites logs duplicate task ids, missing prerequisites and cycles.
// None of them stops a run: unsatisfiable prerequisites end in ABORTED.
func (a *App) checkPrerequisites(catalog *domain.Catalog) {
	graph, errs := domain.BuildGraph(catalog.Tasks)
	for _, err := range errs {
		a.logger.Warn(err.Error())
	}
	if err := graph.Validate(); err != nil {
		a.logger.Warn(err.Error())
	}
}

// ImportOptions locate the catalogs moved by ImportCatalog. Empty fields keep the plan's paths.
type ImportOptions struct {
	Products string
	Workers  string
	Database string
}

// ImportCatalog copies the csv catalogs into the sqlite database, replacing its contents.
func (a *App) ImportCatalog(ctx context.Context, opts ImportOptions) (err error) {
	plan, err := a.loadPlan()
	if err != nil {
		return err
	}

	source := plan.Catalog
	source.Driver = domain.CatalogDriverCSV
	if opts.Products != "" {
		source.Products = opts.Products
	}
	if opts.Workers != "" {
		source.Workers = opts.Workers
	}

	target := plan.Catalog
	target.Driver = domain.CatalogDriverSQLite
	if opts.Database != "" {
		target.Database = opts.Database
	}

	ctx, vertex := a.telemetry.Record(ctx, "import catalog")
	defer func() { vertex.Complete(err) }()

	catalog, err := a.loadCatalog(ctx, source)
	if err != nil {
		return err
	}

	store, err := a.opener.Open(ctx, a.root, target)
	if err != nil {
		return zerr.Wrap(err, "failed to open catalog database")
	}
	defer closeStore(store)

	importer, ok := store.(ports.CatalogImporter)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrCatalogNotWritable, "cannot import catalog"), "driver", string(target.Driver))
	}
	if err := importer.Import(ctx, catalog); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to import catalog"), "database", target.Database)
	}

	a.logger.Info(fmt.Sprintf("imported %d task rows and %d workers into %s",
		len(catalog.Tasks), len(catalog.Workers), target.Database))
	return nil
}

// Validate loads the plan and catalogs and checks the prerequisite graph.
// A valid catalog is listed in prerequisite order.
func (a *App) Validate(ctx context.Context) (err error) {
	plan, err := a.loadPlan()
	if err != nil {
		return err
	}

	ctx, vertex := a.telemetry.Record(ctx, "validate")
	defer func() { vertex.Complete(err) }()

	catalog, err := a.loadCatalog(ctx, plan.Catalog)
	if err != nil {
		return err
	}

	graph, errs := domain.BuildGraph(catalog.Tasks)
	for _, dup := range errs {
		a.logger.Error(dup)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	if err := graph.Validate(); err != nil {
		return err
	}

	if _, err := simulator.SelectWorkers(catalog, plan.Workers); err != nil {
		return err
	}

	lines, err := plan.Order.Lines()
	if err != nil {
		return err
	}
	products := make(map[string]bool)
	for _, p := range catalog.Products() {
		products[p] = true
	}
	for _, line := range lines {
		if !products[line.Product] {
			a.logger.Warn(fmt.Sprintf("product %q is ordered but has no tasks in the catalog", line.Product))
		}
	}

	for task := range graph.Walk() {
		if _, err := fmt.Fprintf(a.out, "%s\t%s\t%s\n", task.ID, task.Product, task.Description); err != nil {
			return zerr.Wrap(err, "failed to write task list")
		}
	}
	a.logger.Info(fmt.Sprintf("catalog is valid: %d tasks, %d workers", graph.TaskCount(), len(catalog.Workers)))
	return nil
}

func closeStore(store ports.CatalogStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}

func driverName(d domain.CatalogDriver) string {
	if d == "" {
		return string(domain.CatalogDriverCSV)
	}
	return string(d)
}
