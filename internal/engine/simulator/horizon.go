package simulator

import "go.trai.ch/taskmill/internal/core/domain"

// EstimateDays returns the number of workdays the remaining work needs when every
// worker is busy all day. The result is at least 1.
func EstimateDays(instances []domain.TaskInstance, workerCount, workdayMinutes int) int {
	if workerCount <= 0 || workdayMinutes <= 0 {
		return 1
	}
	total := 0
	for i := range instances {
		total += instances[i].WorkSeconds()
	}
	capacity := workerCount * workdayMinutes * 60
	days := (total + capacity - 1) / capacity
	return max(1, days)
}

// Cutoff returns the simulated minute past which a run is aborted.
func Cutoff(estimatedDays, workdayMinutes int) int {
	return estimatedDays * workdayMinutes * 2
}
