package ports

import "go.trai.ch/taskmill/internal/core/domain"

// RunStore defines the interface for storing and retrieving finished runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the run recorded for a fingerprint in the project at root.
	// Returns nil, nil if not found.
	Get(root, fingerprint string) (*domain.RunRecord, error)

	// Put stores the run record for the project at root, replacing any record
	// with the same fingerprint.
	Put(root string, record domain.RunRecord) error
}
