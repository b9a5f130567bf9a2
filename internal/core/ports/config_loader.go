package ports

import "go.trai.ch/taskmill/internal/core/domain"

// PlanLoader defines the interface for loading the run plan.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type PlanLoader interface {
	// Load reads the plan file from the given working directory.
	// A missing plan file yields the default plan.
	Load(cwd string) (*domain.Plan, error)
}
