package simulator

import (
	"math"

	"go.trai.ch/taskmill/internal/core/domain"
)

const (
	// FallbackScore is the score of a task with no positive skill requirement.
	FallbackScore = 0.1
	// minRequiredRatio bounds the divisor of a skill ratio.
	minRequiredRatio = 0.01
)

// Score rates how well a worker fits a task. Worker levels are percentages and
// task requirements are ratios; each positively required skill contributes
// level / max(0.01, ratio) and the contributions are averaged.
func Score(worker, required domain.SkillLevels) float64 {
	total, count := 0.0, 0
	for _, skill := range required.Skills() {
		ratio := required.Get(skill)
		if ratio <= 0 {
			continue
		}
		total += worker.Get(skill) / math.Max(minRequiredRatio, ratio)
		count++
	}
	if count == 0 {
		return FallbackScore
	}
	return total / float64(count)
}
