// Package cas implements the run cache: finished simulation results addressed by
// the fingerprint of their inputs.
package cas

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultPath is the run cache location relative to the project root.
	DefaultPath = ".taskmill/runs.json"
	// DefaultMaxRecords bounds the number of cached runs.
	DefaultMaxRecords = 32
)

// Store implements ports.RunStore using one flat JSON file per project root.
// Files are read on first use, so a damaged cache only affects runs that consult it.
type Store struct {
	path       string
	maxRecords int
	mu         sync.RWMutex
	files      map[string]map[string]domain.RunRecord
}

// NewStore creates a new RunStore backed by the file at path. A relative path is
// resolved against the root passed to Get and Put.
func NewStore(path string) *Store {
	return &Store{
		path:       filepath.Clean(path),
		maxRecords: DefaultMaxRecords,
		files:      make(map[string]map[string]domain.RunRecord),
	}
}

// SetMaxRecords changes how many runs are kept; the oldest are evicted first.
func (s *Store) SetMaxRecords(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRecords = max(1, n)
}

// Path returns the cache file used for root.
func (s *Store) Path(root string) string {
	if filepath.IsAbs(s.path) {
		return s.path
	}
	return filepath.Join(root, s.path)
}

// loadLocked returns the records of the file at path, reading it once. The caller holds mu.
func (s *Store) loadLocked(path string) (map[string]domain.RunRecord, error) {
	if cache, ok := s.files[path]; ok {
		return cache, nil
	}

	cache := make(map[string]domain.RunRecord)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, "failed to read run cache"), "path", path)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &cache); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal run cache"), "path", path)
		}
	}

	s.files[path] = cache
	return cache, nil
}

// saveLocked writes the records for path to disk. The caller holds mu.
func (s *Store) saveLocked(path string, cache map[string]domain.RunRecord) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run cache")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for run cache")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write run cache")
	}

	return nil
}

// Get retrieves the run recorded for a fingerprint under root.
func (s *Store) Get(root, fingerprint string) (*domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache, err := s.loadLocked(s.Path(root))
	if err != nil {
		return nil, err
	}
	record, ok := cache[fingerprint]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the run record under root and evicts the oldest records beyond the limit.
func (s *Store) Put(root string, record domain.RunRecord) error {
	if record.Fingerprint == "" {
		return zerr.Wrap(domain.ErrInvalidConfig, "run record without fingerprint")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(root)
	cache, err := s.loadLocked(path)
	if err != nil {
		return err
	}
	cache[record.Fingerprint] = record
	s.evictLocked(cache)
	return s.saveLocked(path, cache)
}

func (s *Store) evictLocked(cache map[string]domain.RunRecord) {
	if len(cache) <= s.maxRecords {
		return
	}
	records := make([]domain.RunRecord, 0, len(cache))
	for _, r := range cache {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b domain.RunRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Fingerprint, b.Fingerprint)
	})
	for _, r := range records[:len(records)-s.maxRecords] {
		delete(cache, r.Fingerprint)
	}
}
