package simulator_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/engine/simulator"
)

func TestEstimateDays(t *testing.T) {
	instances := []domain.TaskInstance{
		{TaskID: "T1", TimePerPiece: 60, Remaining: 480},
		{TaskID: "T2", TimePerPiece: 30, Remaining: 2},
	}

	assert.Equal(t, 2, simulator.EstimateDays(instances, 1, 480))
	assert.Equal(t, 1, simulator.EstimateDays(instances, 2, 480))
	assert.Equal(t, 1, simulator.EstimateDays(nil, 3, 480))
	assert.Equal(t, 1, simulator.EstimateDays(instances, 0, 480))
}

func TestEstimateDays_OrderIndependent(t *testing.T) {
	instances := []domain.TaskInstance{
		{TaskID: "A", TimePerPiece: 45, Remaining: 300},
		{TaskID: "B", TimePerPiece: 60, Remaining: 700},
		{TaskID: "C", TimePerPiece: 10, Remaining: 1000},
	}
	reversed := slices.Clone(instances)
	slices.Reverse(reversed)

	assert.Equal(t, simulator.EstimateDays(instances, 2, 480), simulator.EstimateDays(reversed, 2, 480))
}

func TestCutoff(t *testing.T) {
	assert.Equal(t, 960, simulator.Cutoff(1, 480))
	assert.Equal(t, 2880, simulator.Cutoff(3, 480))
}
