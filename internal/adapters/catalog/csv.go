// Package catalog provides the task and worker catalog stores.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Column names of the csv catalogs. Skill columns are named after domain.CatalogSkills.
const (
	colProduct      = "Product"
	colTask         = "Task"
	colResult       = "Result"
	colRequirements = "Requirements"
	colTimePerPiece = "TimePerPieceSeconds"
	colWorker       = "Worker"
)

var favoriteColumns = []string{"FavoriteProduct1", "FavoriteProduct2", "FavoriteProduct3"}

// CSVStore reads products.csv and workers.csv.
type CSVStore struct {
	productsPath string
	workersPath  string
}

// NewCSVStore creates a store over the given catalog files.
func NewCSVStore(productsPath, workersPath string) *CSVStore {
	return &CSVStore{productsPath: productsPath, workersPath: workersPath}
}

// Load reads both catalogs concurrently. A missing file is an empty catalog.
func (s *CSVStore) Load(ctx context.Context) (*domain.Catalog, error) {
	catalog := &domain.Catalog{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := readRecords(ctx, s.productsPath)
		if err != nil {
			return err
		}
		catalog.Tasks = parseTaskRecords(records)
		return nil
	})

	g.Go(func() error {
		records, err := readRecords(ctx, s.workersPath)
		if err != nil {
			return err
		}
		catalog.Workers = parseWorkerRecords(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// record is one csv row addressed by header name.
type record map[string]string

func readRecords(ctx context.Context, path string) ([]record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the plan file
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open catalog"), "path", path)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read catalog header"), "path", path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read catalog row"), "path", path)
		}
		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			}
		}
		if rec.blank() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r record) blank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

func parseTaskRecords(records []record) []domain.TaskRow {
	rows := make([]domain.TaskRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.TaskRow{
			Product:             rec[colProduct],
			Description:         rec[colTask],
			ResultID:            rec[colResult],
			Requirements:        domain.ParseRequirements(rec[colRequirements]),
			Skills:              parseSkills(rec),
			TimePerPieceSeconds: parseSeconds(rec[colTimePerPiece]),
		})
	}
	return rows
}

func parseWorkerRecords(records []record) []domain.WorkerRow {
	rows := make([]domain.WorkerRow, 0, len(records))
	for _, rec := range records {
		cells := make([]string, len(favoriteColumns))
		for i, col := range favoriteColumns {
			cells[i] = rec[col]
		}
		rows = append(rows, domain.WorkerRow{
			Name:             rec[colWorker],
			Skills:           parseSkills(rec),
			FavoriteProducts: domain.ParseFavorites(cells),
		})
	}
	return rows
}

func parseSkills(rec record) domain.SkillLevels {
	skills := make(domain.SkillLevels, len(domain.CatalogSkills))
	for _, skill := range domain.CatalogSkills {
		skills[skill] = domain.SanitizePercent(parseFloat(rec[string(skill)]))
	}
	return skills
}

// parseFloat returns 0 for blank or malformed cells.
func parseFloat(cell string) float64 {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseSeconds returns 0 for blank, malformed or non-positive cells, leaving the
// default to domain.TaskRow.EffectiveTimePerPiece.
func parseSeconds(cell string) int {
	v := parseFloat(cell)
	if v < 1 {
		return 0
	}
	return int(v)
}
