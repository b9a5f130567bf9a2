package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"go.trai.ch/zerr"
)

// ErrCellOccupied is returned when a (day, worker, slot) cell is recorded twice.
var ErrCellOccupied = zerr.New("schedule cell already recorded")

// ScheduleCell is what one worker did in one slot: the first task worked and the
// pieces produced across any task switches.
type ScheduleCell struct {
	Day         int    `json:"day"`
	Worker      string `json:"worker"`
	Slot        int    `json:"slot"`
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
	Pieces      int    `json:"pieces"`
}

// Summary renders the cell the way the schedule grid shows it.
func (c ScheduleCell) Summary() string {
	return fmt.Sprintf("[%s] %s (%d pcs)", c.TaskID, c.Description, c.Pieces)
}

type cellKey struct {
	day    int
	worker string
	slot   int
}

// Schedule is the day/worker/slot grid. Absent cells mean idle.
type Schedule struct {
	cells map[cellKey]ScheduleCell
	// workers is the column order.
	workers []string
}

// NewSchedule returns an empty grid with the given worker column order.
func NewSchedule(workers []string) *Schedule {
	return &Schedule{
		cells:   make(map[cellKey]ScheduleCell),
		workers: slices.Clone(workers),
	}
}

// Record inserts a cell. A triple can only be recorded once.
func (s *Schedule) Record(cell ScheduleCell) error {
	k := cellKey{day: cell.Day, worker: cell.Worker, slot: cell.Slot}
	if _, exists := s.cells[k]; exists {
		err := zerr.With(zerr.Wrap(ErrCellOccupied, "cannot record schedule cell"), "day", cell.Day)
		err = zerr.With(err, "worker", cell.Worker)
		return zerr.With(err, "slot", cell.Slot)
	}
	s.cells[k] = cell
	return nil
}

// Cell looks up a cell.
func (s *Schedule) Cell(day int, worker string, slot int) (ScheduleCell, bool) {
	c, ok := s.cells[cellKey{day: day, worker: worker, slot: slot}]
	return c, ok
}

// Workers returns the worker column order.
func (s *Schedule) Workers() []string {
	return slices.Clone(s.workers)
}

// Len returns the number of recorded cells.
func (s *Schedule) Len() int {
	return len(s.cells)
}

// Cells returns every cell ordered by day, slot, then worker column.
func (s *Schedule) Cells() []ScheduleCell {
	col := make(map[string]int, len(s.workers))
	for i, w := range s.workers {
		col[w] = i
	}
	out := make([]ScheduleCell, 0, len(s.cells))
	for _, c := range s.cells {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b ScheduleCell) int {
		if d := cmp.Compare(a.Day, b.Day); d != 0 {
			return d
		}
		if d := cmp.Compare(a.Slot, b.Slot); d != 0 {
			return d
		}
		if d := cmp.Compare(col[a.Worker], col[b.Worker]); d != 0 {
			return d
		}
		return cmp.Compare(a.Worker, b.Worker)
	})
	return out
}

// DayCells returns the cells of one day, ordered like Cells.
func (s *Schedule) DayCells(day int) []ScheduleCell {
	var out []ScheduleCell
	for _, c := range s.Cells() {
		if c.Day == day {
			out = append(out, c)
		}
	}
	return out
}

// Grid returns the nested day -> worker -> slot -> summary view.
func (s *Schedule) Grid() map[int]map[string]map[int]string {
	grid := make(map[int]map[string]map[int]string)
	for _, c := range s.cells {
		byWorker, ok := grid[c.Day]
		if !ok {
			byWorker = make(map[string]map[int]string)
			grid[c.Day] = byWorker
		}
		bySlot, ok := byWorker[c.Worker]
		if !ok {
			bySlot = make(map[int]string)
			byWorker[c.Worker] = bySlot
		}
		bySlot[c.Slot] = c.Summary()
	}
	return grid
}

type scheduleJSON struct {
	Workers []string       `json:"workers"`
	Cells   []ScheduleCell `json:"cells"`
}

// MarshalJSON encodes the grid as its worker order and ordered cells.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(scheduleJSON{Workers: s.workers, Cells: s.Cells()})
}

// UnmarshalJSON rebuilds the grid from its encoded form.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw scheduleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *NewSchedule(raw.Workers)
	for _, c := range raw.Cells {
		if err := s.Record(c); err != nil {
			return err
		}
	}
	return nil
}
