package domain

import "time"

// RunRecord is a stored simulation result keyed by the fingerprint of its inputs.
type RunRecord struct {
	ID          string    `json:"id,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	Result      *Result   `json:"result,omitempty"`
}
