package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskmill/internal/core/domain"
)

func TestSchedule_Grid(t *testing.T) {
	s := domain.NewSchedule([]string{"Alice", "Bob"})
	require.NoError(t, s.Record(domain.ScheduleCell{Day: 1, Worker: "Alice", Slot: 0, TaskID: "T1", Description: "fold", Pieces: 30}))
	require.NoError(t, s.Record(domain.ScheduleCell{Day: 1, Worker: "Bob", Slot: 2, TaskID: "L1", Description: "cut", Pieces: 12}))
	require.NoError(t, s.Record(domain.ScheduleCell{Day: 2, Worker: "Alice", Slot: 1, TaskID: "T2", Description: "glue", Pieces: 4}))

	grid := s.Grid()

	assert.Equal(t, map[int]map[string]map[int]string{
		1: {
			"Alice": {0: "[T1] fold (30 pcs)"},
			"Bob":   {2: "[L1] cut (12 pcs)"},
		},
		2: {
			"Alice": {1: "[T2] glue (4 pcs)"},
		},
	}, grid)

	_, idle := grid[1]["Alice"][1]
	assert.False(t, idle, "unrecorded slots stay absent")
	assert.Empty(t, domain.NewSchedule(nil).Grid())
}

func TestSchedule_RecordTwice(t *testing.T) {
	s := domain.NewSchedule([]string{"Alice"})
	cell := domain.ScheduleCell{Day: 1, Worker: "Alice", Slot: 0, TaskID: "T1", Pieces: 1}
	require.NoError(t, s.Record(cell))

	err := s.Record(cell)
	require.ErrorIs(t, err, domain.ErrCellOccupied)
	assert.Equal(t, 1, s.Len())
}
