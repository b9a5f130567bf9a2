// Package simulator implements the slot-stepped production scheduling engine.
package simulator

import (
	"context"
	"fmt"

	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/zerr"
)

// Simulator runs greedy skill-based production simulations.
type Simulator struct{}

// New creates a new Simulator.
func New() *Simulator {
	return &Simulator{}
}

// Run simulates the plan against the catalog until all demand is produced or the
// safety cutoff is reached. It returns either a complete result (DONE or ABORTED)
// or an error; a failed run never yields a partial result.
func (s *Simulator) Run(ctx context.Context, plan *domain.Plan, catalog *domain.Catalog) (result *domain.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = zerr.With(zerr.Wrap(domain.ErrSimulationFault, "recovered panic"), "panic", fmt.Sprint(r))
		}
	}()

	if err := plan.Settings.Validate(); err != nil {
		return nil, err
	}

	workers, err := SelectWorkers(catalog, plan.Workers)
	if err != nil {
		return nil, err
	}

	instances, warnings, err := Expand(plan.Order, catalog.Tasks)
	if err != nil {
		return nil, err
	}

	if len(workers) == 0 && hasDemand(instances) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoCapacity, "no workers available"), "tasks", len(instances))
	}

	state := newRunState(plan.Settings, workers, instances)
	state.warnings = warnings
	return state.run(ctx)
}

// SelectWorkers returns the profiles of the named workers in catalog order.
// An empty selection selects every catalog worker.
func SelectWorkers(catalog *domain.Catalog, names []string) ([]domain.WorkerProfile, error) {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := catalog.Worker(name); !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownWorker, "invalid worker selection"), "worker", name)
		}
		selected[name] = true
	}

	profiles := make([]domain.WorkerProfile, 0, len(catalog.Workers))
	seen := make(map[string]bool, len(catalog.Workers))
	for _, w := range catalog.Workers {
		if seen[w.Name] {
			continue
		}
		if len(names) > 0 && !selected[w.Name] {
			continue
		}
		seen[w.Name] = true
		profiles = append(profiles, domain.WorkerProfile{Name: w.Name, Skills: w.Skills})
	}
	return profiles, nil
}

func hasDemand(instances []domain.TaskInstance) bool {
	for i := range instances {
		if instances[i].Remaining > 0 {
			return true
		}
	}
	return false
}

// runState holds the mutable state of one run. Task instances live in an arena
// and are referenced by index; all mutation goes through produce.
type runState struct {
	settings  domain.Settings
	workers   []domain.WorkerProfile
	tasks     []domain.TaskInstance
	inventory *domain.Inventory
	schedule  *domain.Schedule
	log       []domain.LogEntry
	warnings  []string

	elapsed   int
	day       int
	estimated int
	cutoff    int
}

func newRunState(settings domain.Settings, workers []domain.WorkerProfile, tasks []domain.TaskInstance) *runState {
	names := make([]string, len(workers))
	for i, w := range workers {
		names[i] = w.Name
	}
	estimated := EstimateDays(tasks, len(workers), settings.WorkdayMinutes)
	return &runState{
		settings:  settings,
		workers:   workers,
		tasks:     tasks,
		inventory: domain.NewInventory(),
		schedule:  domain.NewSchedule(names),
		log:       []domain.LogEntry{},
		day:       1,
		estimated: estimated,
		cutoff:    Cutoff(estimated, settings.WorkdayMinutes),
	}
}

func (st *runState) run(ctx context.Context) (*domain.Result, error) {
	for {
		if st.done() {
			return st.result(domain.RunStatusDone), nil
		}
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "simulation interrupted")
		}

		if err := st.step(); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrSimulationFault, "slot step failed"), "cause", err.Error())
		}

		if !st.done() && st.elapsed > st.cutoff {
			return st.result(domain.RunStatusAborted), nil
		}
	}
}

func (st *runState) done() bool {
	for i := range st.tasks {
		if st.tasks[i].Remaining > 0 {
			return false
		}
	}
	return true
}

// step simulates one slot and advances the clock.
func (st *runState) step() error {
	workday := st.settings.WorkdayMinutes
	slotMinutes := st.settings.SlotMinutes
	day := st.elapsed/workday + 1
	slot := (st.elapsed % workday) / slotMinutes
	st.day = day

	eligible := st.eligible()
	if len(eligible) == 0 {
		st.elapsed += slotMinutes
		return nil
	}

	picks := make([]int, len(st.workers))
	for w := range st.workers {
		picks[w] = st.pick(w, eligible)
	}

	for w, first := range picks {
		if first < 0 {
			continue
		}
		if err := st.produce(day, slot, w, first, eligible); err != nil {
			return err
		}
	}

	st.elapsed += slotMinutes
	return nil
}

// eligible returns the arena indices of unfinished tasks that pass the gate, in arena order.
func (st *runState) eligible() []int {
	var out []int
	for i := range st.tasks {
		t := &st.tasks[i]
		if t.Remaining > 0 && Eligible(st.settings.Gating, t, st.inventory) {
			out = append(out, i)
		}
	}
	return out
}

// pick selects the eligible task maximizing (score, remaining) for worker w.
// Ties keep the earlier task.
func (st *runState) pick(w int, eligible []int) int {
	best := -1
	bestScore := 0.0
	for _, idx := range eligible {
		score := Score(st.workers[w].Skills, st.tasks[idx].Skills)
		if best < 0 || better(score, st.tasks[idx].Remaining, bestScore, st.tasks[best].Remaining) {
			best, bestScore = idx, score
		}
	}
	return best
}

func better(score float64, remaining int, bestScore float64, bestRemaining int) bool {
	if score != bestScore {
		return score > bestScore
	}
	return remaining > bestRemaining
}

// largestRemaining returns the eligible task with the most pieces left, or -1.
func (st *runState) largestRemaining(eligible []int) int {
	best := -1
	for _, idx := range eligible {
		if st.tasks[idx].Remaining <= 0 {
			continue
		}
		if best < 0 || st.tasks[idx].Remaining > st.tasks[best].Remaining {
			best = idx
		}
	}
	return best
}

// produce runs worker w for one slot starting on task first, switching to the
// largest remaining eligible task whenever the current one runs out.
func (st *runState) produce(day, slot, w, first int, eligible []int) error {
	worker := st.workers[w].Name
	timeLeft := st.settings.SlotMinutes * 60
	clock := domain.FormatClock(slot * st.settings.SlotMinutes)
	total := 0
	worked := -1

	for current := first; timeLeft > 0 && current >= 0; {
		t := &st.tasks[current]
		if t.Remaining <= 0 {
			current = st.largestRemaining(eligible)
			continue
		}

		pieces := min(t.Remaining, timeLeft/max(1, t.TimePerPiece))
		if pieces <= 0 {
			break
		}

		t.Remaining -= pieces
		st.inventory.Add(t.TaskID, pieces)
		timeLeft -= pieces * t.TimePerPiece
		total += pieces
		if worked < 0 {
			worked = current
		}

		st.log = append(st.log, domain.LogEntry{
			Day:         day,
			Slot:        slot,
			Time:        clock,
			Worker:      worker,
			TaskID:      t.TaskID,
			Description: t.Description,
			Pieces:      pieces,
		})
	}

	// The cell names the first task that produced, or the picked one when nothing did.
	if worked < 0 {
		worked = first
	}
	return st.schedule.Record(domain.ScheduleCell{
		Day:         day,
		Worker:      worker,
		Slot:        slot,
		TaskID:      st.tasks[worked].TaskID,
		Description: st.tasks[worked].Description,
		Pieces:      total,
	})
}

func (st *runState) result(status domain.RunStatus) *domain.Result {
	return &domain.Result{
		Status:         status,
		EstimatedDays:  st.estimated,
		FinalDay:       st.day,
		ElapsedMinutes: st.elapsed,
		SlotMinutes:    st.settings.SlotMinutes,
		WorkdayMinutes: st.settings.WorkdayMinutes,
		Schedule:       st.schedule,
		Inventory:      st.inventory,
		Log:            st.log,
		Warnings:       st.warnings,
	}
}
