package domain

// TaskInstance is one (order line, catalog row) pair with its own remaining quantity.
// Instances are created per run and owned by the simulator for that run.
type TaskInstance struct {
	Product      string
	TaskID       string
	Description  string
	Requirements []string
	// Requirements as ratios in [0,1].
	Skills       SkillLevels
	TimePerPiece int
	// TargetQty is the product's order quantity, used by the eligibility gate.
	TargetQty int
	Remaining int
}

// WorkerProfile is a read-only worker for one run.
type WorkerProfile struct {
	Name   string
	Skills SkillLevels
}

// WorkSeconds returns the effort still required by the instance.
func (t *TaskInstance) WorkSeconds() int {
	return t.TimePerPiece * t.Remaining
}
