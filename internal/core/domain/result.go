package domain

import "fmt"

// RunStatus is the terminal state of a simulation.
type RunStatus string

const (
	// RunStatusDone means every task instance reached zero remaining.
	RunStatusDone RunStatus = "DONE"
	// RunStatusAborted means the safety cutoff was reached first.
	RunStatusAborted RunStatus = "ABORTED"
)

// LogEntry is one production event.
type LogEntry struct {
	Day         int    `json:"day"`
	Slot        int    `json:"slot"`
	Time        string `json:"time"`
	Worker      string `json:"worker"`
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
	Pieces      int    `json:"pieces"`
}

// Event renders the entry as a sentence.
func (e LogEntry) Event() string {
	return fmt.Sprintf("Worker %s produced %d pcs of %s (%s)", e.Worker, e.Pieces, e.TaskID, e.Description)
}

// Result is the complete output of one run.
type Result struct {
	Status RunStatus `json:"status"`
	// EstimatedDays is the horizon estimate made before the run.
	EstimatedDays int `json:"estimated_days"`
	// FinalDay is the day of the last simulated slot.
	FinalDay       int        `json:"final_day"`
	ElapsedMinutes int        `json:"elapsed_minutes"`
	SlotMinutes    int        `json:"slot_minutes"`
	WorkdayMinutes int        `json:"workday_minutes"`
	Schedule       *Schedule  `json:"schedule"`
	Inventory      *Inventory `json:"inventory"`
	Log            []LogEntry `json:"log"`
	// Warnings carries non-fatal findings such as ordered products with no tasks.
	Warnings []string `json:"warnings,omitempty"`
}

// SlotsPerDay returns the number of slots in each simulated day.
func (r *Result) SlotsPerDay() int {
	if r.SlotMinutes < 1 {
		return 0
	}
	return r.WorkdayMinutes / r.SlotMinutes
}

// Done reports whether all demand was satisfied.
func (r *Result) Done() bool {
	return r.Status == RunStatusDone
}

// FormatClock renders minutes since the start of a workday as an HH:MM wall clock from 08:00.
func FormatClock(minuteOfDay int) string {
	total := DayStartMinutes + minuteOfDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
