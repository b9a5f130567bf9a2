package simulator

import "go.trai.ch/taskmill/internal/core/domain"

// Eligible reports whether the prerequisites of task are satisfied by inv under
// policy. A task without prerequisites is always eligible.
func Eligible(policy domain.GatingPolicy, task *domain.TaskInstance, inv *domain.Inventory) bool {
	for _, req := range task.Requirements {
		have := inv.Count(req)
		switch policy {
		case domain.GatingAnyProduced:
			if have <= 0 {
				return false
			}
		default:
			if have < task.TargetQty {
				return false
			}
		}
	}
	return true
}
