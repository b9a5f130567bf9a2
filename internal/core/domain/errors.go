package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when a catalog declares the same task id twice.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task lists a prerequisite that no catalog row produces.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the prerequisite graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrNoCapacity is returned when demand exists but no worker is selected.
	ErrNoCapacity = zerr.New("no capacity")

	// ErrUnknownWorker is returned when the worker selection names a worker missing from the catalog.
	ErrUnknownWorker = zerr.New("unknown worker")

	// ErrInvalidConfig is returned for unusable slot or workday lengths.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInvalidOrder is returned when an order line has a negative quantity.
	ErrInvalidOrder = zerr.New("invalid order")

	// ErrUnknownGatingPolicy is returned when a plan names an unsupported eligibility policy.
	ErrUnknownGatingPolicy = zerr.New("unknown gating policy")

	// ErrUnknownCatalogDriver is returned when a plan names an unsupported catalog driver.
	ErrUnknownCatalogDriver = zerr.New("unknown catalog driver")

	// ErrUnknownFormat is returned when an output format has no renderer.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrSimulationAborted is returned when a run hit the safety cutoff before satisfying all demand.
	ErrSimulationAborted = zerr.New("simulation aborted")

	// ErrCatalogNotWritable is returned when importing into a store that cannot be written.
	ErrCatalogNotWritable = zerr.New("catalog store is not writable")

	// ErrSimulationFault is returned when a run failed internally; no result is produced.
	ErrSimulationFault = zerr.New("simulation fault")
)
