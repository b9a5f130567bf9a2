package ports

import "go.trai.ch/taskmill/internal/core/domain"

// Hasher defines the interface for computing run fingerprints.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFingerprint hashes everything that determines the outcome of a run.
	ComputeFingerprint(plan *domain.Plan, catalog *domain.Catalog) (string, error)
}
