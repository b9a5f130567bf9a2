package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Inventory is the cumulative produced-piece ledger keyed by task id.
// Counts only ever increase.
type Inventory struct {
	counts map[string]int
}

// NewInventory returns an empty ledger.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// Count returns the pieces produced for a task id, zero when never produced.
func (inv *Inventory) Count(taskID string) int {
	n, ok := inv.counts[taskID]
	if !ok {
		return 0
	}
	return n
}

// Add records produced pieces. Non-positive amounts are ignored.
func (inv *Inventory) Add(taskID string, pieces int) {
	if pieces <= 0 {
		return
	}
	if inv.counts == nil {
		inv.counts = make(map[string]int)
	}
	if _, ok := inv.counts[taskID]; !ok {
		inv.counts[taskID] = 0
	}
	inv.counts[taskID] += pieces
}

// TaskIDs returns the task ids with recorded production, sorted.
func (inv *Inventory) TaskIDs() []string {
	return slices.Sorted(maps.Keys(inv.counts))
}

// Total returns the sum of all counts.
func (inv *Inventory) Total() int {
	total := 0
	for _, n := range inv.counts {
		total += n
	}
	return total
}

// Snapshot returns a copy of the ledger as a plain map.
func (inv *Inventory) Snapshot() map[string]int {
	return maps.Clone(inv.counts)
}

// MarshalJSON encodes the ledger as an object of counts.
func (inv *Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inv.counts)
}

// UnmarshalJSON decodes an object of counts.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	counts := make(map[string]int)
	if err := json.Unmarshal(data, &counts); err != nil {
		return err
	}
	inv.counts = counts
	return nil
}
