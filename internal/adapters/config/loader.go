// Package config provides the plan file loader for taskmill.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the plan file looked up in the working directory.
	DefaultFilename = "taskmill.yaml"
	// DefaultProductsFile is the default task catalog for the csv driver.
	DefaultProductsFile = "products.csv"
	// DefaultWorkersFile is the default worker catalog for the csv driver.
	DefaultWorkersFile = "workers.csv"
	// DefaultDatabaseFile is the default database for the sqlite driver.
	DefaultDatabaseFile = "taskmill.db"

	supportedVersion = "1"
)

// Loader implements ports.PlanLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a new Loader reading DefaultFilename.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{
		Filename: DefaultFilename,
		logger:   log,
	}
}

// Load reads the plan from the given working directory.
// A missing plan file yields DefaultPlan.
func (l *Loader) Load(cwd string) (*domain.Plan, error) {
	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Info("no " + l.Filename + " found, using default plan")
		return DefaultPlan(), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read plan file"), "path", path)
	}

	plan, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return plan, nil
}

// DefaultPlan returns the plan used when no plan file exists: csv catalogs in the
// working directory, every worker, an empty order and default settings.
func DefaultPlan() *domain.Plan {
	return &domain.Plan{
		Catalog: domain.CatalogSpec{
			Driver:   domain.CatalogDriverCSV,
			Products: DefaultProductsFile,
			Workers:  DefaultWorkersFile,
			Database: DefaultDatabaseFile,
		},
		Order:    domain.Order{},
		Settings: domain.DefaultSettings(),
	}
}

// Parse decodes and validates a plan file. Unknown keys are rejected.
func Parse(data []byte) (*domain.Plan, error) {
	var planfile Planfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&planfile); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, "failed to parse plan file")
	}

	if planfile.Version != "" && planfile.Version != supportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported plan version"), "version", planfile.Version)
	}

	plan := DefaultPlan()

	catalog, err := toCatalogSpec(planfile.Catalog)
	if err != nil {
		return nil, err
	}
	plan.Catalog = catalog

	for product, qty := range planfile.Order {
		plan.Order[product] = qty
	}
	if _, err := plan.Order.Lines(); err != nil {
		return nil, err
	}

	plan.Workers = planfile.Workers

	if planfile.SlotMinutes != 0 {
		plan.Settings.SlotMinutes = planfile.SlotMinutes
	}
	if planfile.WorkdayMinutes != 0 {
		plan.Settings.WorkdayMinutes = planfile.WorkdayMinutes
	}
	gating, err := domain.ParseGatingPolicy(planfile.Gating)
	if err != nil {
		return nil, err
	}
	plan.Settings.Gating = gating

	if err := plan.Settings.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

func toCatalogSpec(dto CatalogDTO) (domain.CatalogSpec, error) {
	spec := DefaultPlan().Catalog
	switch domain.CatalogDriver(dto.Driver) {
	case "", domain.CatalogDriverCSV:
		spec.Driver = domain.CatalogDriverCSV
	case domain.CatalogDriverSQLite:
		spec.Driver = domain.CatalogDriverSQLite
	default:
		return domain.CatalogSpec{}, zerr.With(zerr.Wrap(domain.ErrUnknownCatalogDriver, "invalid catalog section"), "driver", dto.Driver)
	}
	if dto.Products != "" {
		spec.Products = dto.Products
	}
	if dto.Workers != "" {
		spec.Workers = dto.Workers
	}
	if dto.Database != "" {
		spec.Database = dto.Database
	}
	return spec, nil
}
