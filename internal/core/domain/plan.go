package domain

import (
	"cmp"
	"slices"

	"go.trai.ch/zerr"
)

const (
	// DefaultSlotMinutes is the scheduling granularity.
	DefaultSlotMinutes = 30
	// DefaultWorkdayMinutes is an eight hour day.
	DefaultWorkdayMinutes = 8 * 60
	// DayStartMinutes is the wall clock of slot 0, 08:00.
	DayStartMinutes = 8 * 60
	// MaxWorkdayMinutes keeps every slot label before midnight.
	MaxWorkdayMinutes = 24*60 - DayStartMinutes
)

// GatingPolicy decides how much prerequisite inventory unlocks a dependent task.
type GatingPolicy string

const (
	// GatingQuantityComplete requires each prerequisite to reach the product's full order quantity.
	GatingQuantityComplete GatingPolicy = "quantity-complete"
	// GatingAnyProduced requires at least one piece of each prerequisite.
	GatingAnyProduced GatingPolicy = "any-produced"
)

// ParseGatingPolicy validates a policy name. An empty name selects quantity-complete.
func ParseGatingPolicy(s string) (GatingPolicy, error) {
	switch GatingPolicy(s) {
	case "", GatingQuantityComplete:
		return GatingQuantityComplete, nil
	case GatingAnyProduced:
		return GatingAnyProduced, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownGatingPolicy, "cannot parse gating policy"), "policy", s)
	}
}

// CatalogDriver selects the catalog store implementation.
type CatalogDriver string

const (
	// CatalogDriverCSV reads products.csv and workers.csv.
	CatalogDriverCSV CatalogDriver = "csv"
	// CatalogDriverSQLite reads a SQLite database.
	CatalogDriverSQLite CatalogDriver = "sqlite"
)

// CatalogSpec locates the catalogs for a run.
type CatalogSpec struct {
	Driver   CatalogDriver
	Products string
	Workers  string
	Database string
}

// OrderLine is the desired quantity of one product.
type OrderLine struct {
	Product  string
	Quantity int
}

// Order maps product ids to desired quantities.
type Order map[string]int

// Lines returns the order lines with positive quantity, sorted by product id.
// It fails when any quantity is negative.
func (o Order) Lines() ([]OrderLine, error) {
	lines := make([]OrderLine, 0, len(o))
	for product, qty := range o {
		if qty < 0 {
			err := zerr.With(zerr.Wrap(ErrInvalidOrder, "cannot expand order"), "product", product)
			return nil, zerr.With(err, "quantity", qty)
		}
		if qty == 0 {
			continue
		}
		lines = append(lines, OrderLine{Product: product, Quantity: qty})
	}
	slices.SortFunc(lines, func(a, b OrderLine) int {
		return cmp.Compare(a.Product, b.Product)
	})
	return lines, nil
}

// Settings are the simulation parameters.
type Settings struct {
	SlotMinutes    int
	WorkdayMinutes int
	Gating         GatingPolicy
}

// DefaultSettings returns 30 minute slots over an eight hour day with quantity-complete gating.
func DefaultSettings() Settings {
	return Settings{
		SlotMinutes:    DefaultSlotMinutes,
		WorkdayMinutes: DefaultWorkdayMinutes,
		Gating:         GatingQuantityComplete,
	}
}

// Validate checks that the workday divides into whole slots, ends by midnight
// and that the policy is known.
func (s Settings) Validate() error {
	if s.SlotMinutes < 1 {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "slot length must be positive"), "slot_minutes", s.SlotMinutes)
	}
	if s.WorkdayMinutes < s.SlotMinutes || s.WorkdayMinutes%s.SlotMinutes != 0 {
		err := zerr.With(zerr.Wrap(ErrInvalidConfig, "workday is not a whole number of slots"), "workday_minutes", s.WorkdayMinutes)
		return zerr.With(err, "slot_minutes", s.SlotMinutes)
	}
	if s.WorkdayMinutes > MaxWorkdayMinutes {
		err := zerr.With(zerr.Wrap(ErrInvalidConfig, "workday runs past midnight"), "workday_minutes", s.WorkdayMinutes)
		return zerr.With(err, "max_workday_minutes", MaxWorkdayMinutes)
	}
	if _, err := ParseGatingPolicy(string(s.Gating)); err != nil {
		return err
	}
	return nil
}

// SlotsPerDay returns the number of slots in a workday.
func (s Settings) SlotsPerDay() int {
	return s.WorkdayMinutes / s.SlotMinutes
}

// Plan is everything one run needs apart from the catalog contents.
type Plan struct {
	Catalog  CatalogSpec
	Order    Order
	Workers  []string
	Settings Settings
}
