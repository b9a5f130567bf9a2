package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// skillColumns maps each catalog skill to its column in both tables.
var skillColumns = map[domain.Skill]string{
	domain.SkillBending:        "bending",
	domain.SkillGluing:         "gluing",
	domain.SkillAssembling:     "assembling",
	domain.SkillEdgeScrap:      "edge_scrap",
	domain.SkillOpenPaper:      "open_paper",
	domain.SkillQualityControl: "quality_control",
}

// SQLiteStore keeps both catalogs in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create database directory"), "path", path)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open database"), "path", path)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to ping database"), "path", path)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to migrate database"), "path", path)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	version := 0
	// A fresh database has no schema_version table yet.
	_ = s.db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS products (
				position               INTEGER PRIMARY KEY,
				product                TEXT NOT NULL,
				task                   TEXT NOT NULL DEFAULT '',
				result                 TEXT NOT NULL,
				requirements           TEXT NOT NULL DEFAULT '',
				bending                REAL NOT NULL DEFAULT 0,
				gluing                 REAL NOT NULL DEFAULT 0,
				assembling             REAL NOT NULL DEFAULT 0,
				edge_scrap             REAL NOT NULL DEFAULT 0,
				open_paper             REAL NOT NULL DEFAULT 0,
				quality_control        REAL NOT NULL DEFAULT 0,
				time_per_piece_seconds INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE IF NOT EXISTS workers (
				position          INTEGER PRIMARY KEY,
				worker            TEXT NOT NULL,
				bending           REAL NOT NULL DEFAULT 0,
				gluing            REAL NOT NULL DEFAULT 0,
				assembling        REAL NOT NULL DEFAULT 0,
				edge_scrap        REAL NOT NULL DEFAULT 0,
				open_paper        REAL NOT NULL DEFAULT 0,
				quality_control   REAL NOT NULL DEFAULT 0,
				favorite_product1 TEXT NOT NULL DEFAULT '',
				favorite_product2 TEXT NOT NULL DEFAULT '',
				favorite_product3 TEXT NOT NULL DEFAULT ''
			);

			CREATE INDEX IF NOT EXISTS idx_products_product ON products(product);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}

func skillColumnList() string {
	cols := make([]string, len(domain.CatalogSkills))
	for i, skill := range domain.CatalogSkills {
		cols[i] = skillColumns[skill]
	}
	return strings.Join(cols, ", ")
}

// Load reads both tables concurrently, in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Catalog, error) {
	catalog := &domain.Catalog{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := s.loadTasks(ctx)
		if err != nil {
			return zerr.Wrap(err, "failed to load products")
		}
		catalog.Tasks = tasks
		return nil
	})

	g.Go(func() error {
		workers, err := s.loadWorkers(ctx)
		if err != nil {
			return zerr.Wrap(err, "failed to load workers")
		}
		catalog.Workers = workers
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *SQLiteStore) loadTasks(ctx context.Context) ([]domain.TaskRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT product, task, result, requirements, "+skillColumnList()+", time_per_piece_seconds FROM products ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.TaskRow
	for rows.Next() {
		var (
			row          domain.TaskRow
			requirements string
			levels       = make([]float64, len(domain.CatalogSkills))
		)
		dest := []any{&row.Product, &row.Description, &row.ResultID, &requirements}
		for i := range levels {
			dest = append(dest, &levels[i])
		}
		dest = append(dest, &row.TimePerPieceSeconds)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row.Requirements = domain.ParseRequirements(requirements)
		row.Skills = toSkillLevels(levels)
		tasks = append(tasks, row)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) loadWorkers(ctx context.Context) ([]domain.WorkerRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT worker, "+skillColumnList()+", favorite_product1, favorite_product2, favorite_product3 FROM workers ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var workers []domain.WorkerRow
	for rows.Next() {
		var (
			row       domain.WorkerRow
			levels    = make([]float64, len(domain.CatalogSkills))
			favorites = make([]string, len(favoriteColumns))
		)
		dest := []any{&row.Name}
		for i := range levels {
			dest = append(dest, &levels[i])
		}
		for i := range favorites {
			dest = append(dest, &favorites[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row.Skills = toSkillLevels(levels)
		row.FavoriteProducts = domain.ParseFavorites(favorites)
		workers = append(workers, row)
	}
	return workers, rows.Err()
}

func toSkillLevels(levels []float64) domain.SkillLevels {
	skills := make(domain.SkillLevels, len(levels))
	for i, skill := range domain.CatalogSkills {
		skills[skill] = domain.SanitizePercent(levels[i])
	}
	return skills
}

// Import replaces both tables with the given catalog in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, catalog *domain.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to begin import")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return zerr.Wrap(err, "failed to clear products")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM workers"); err != nil {
		return zerr.Wrap(err, "failed to clear workers")
	}

	for i, row := range catalog.Tasks {
		args := []any{i, row.Product, row.Description, row.ResultID, strings.Join(row.Requirements, ",")}
		for _, skill := range domain.CatalogSkills {
			args = append(args, row.Skills.Get(skill))
		}
		args = append(args, row.TimePerPieceSeconds)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO products (position, product, task, result, requirements, "+skillColumnList()+
				", time_per_piece_seconds) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", args...); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to insert product row"), "result", row.ResultID)
		}
	}

	for i, row := range catalog.Workers {
		args := []any{i, row.Name}
		for _, skill := range domain.CatalogSkills {
			args = append(args, row.Skills.Get(skill))
		}
		for j := range favoriteColumns {
			fav := ""
			if j < len(row.FavoriteProducts) {
				fav = row.FavoriteProducts[j]
			}
			args = append(args, fav)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO workers (position, worker, "+skillColumnList()+
				", favorite_product1, favorite_product2, favorite_product3) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", args...); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to insert worker row"), "worker", row.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, "failed to commit import")
	}
	return nil
}
