// Package fingerprint computes the cache key of a simulation run.
package fingerprint

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/taskmill/internal/core/domain"
	"go.trai.ch/taskmill/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// schemaTag changes whenever the hashed layout or the simulation semantics change.
const schemaTag = "taskmill/run/v1"

// Hasher hashes plans and catalogs with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFingerprint hashes the settings, order, worker selection and both catalogs.
// The catalog location is not part of the fingerprint, only its contents.
func (h *Hasher) ComputeFingerprint(plan *domain.Plan, catalog *domain.Catalog) (string, error) {
	lines, err := plan.Order.Lines()
	if err != nil {
		return "", err
	}

	hasher := xxhash.New()
	writeString(hasher, schemaTag)

	h.hashSettings(plan.Settings, hasher)

	for _, line := range lines {
		writeString(hasher, line.Product)
		writeString(hasher, strconv.Itoa(line.Quantity))
	}
	section(hasher)

	selected := slices.Clone(plan.Workers)
	slices.Sort(selected)
	for _, name := range slices.Compact(selected) {
		writeString(hasher, name)
	}
	section(hasher)

	for _, row := range catalog.Tasks {
		h.hashTaskRow(row, hasher)
	}
	section(hasher)

	for _, row := range catalog.Workers {
		h.hashWorkerRow(row, hasher)
	}
	section(hasher)

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashSettings(s domain.Settings, hasher *xxhash.Digest) {
	writeString(hasher, strconv.Itoa(s.SlotMinutes))
	writeString(hasher, strconv.Itoa(s.WorkdayMinutes))
	writeString(hasher, string(s.Gating))
	section(hasher)
}

// hashTaskRow hashes one catalog row. Row order is significant: it breaks ties
// between rows sharing a task id.
func (h *Hasher) hashTaskRow(row domain.TaskRow, hasher *xxhash.Digest) {
	writeString(hasher, row.Product)
	writeString(hasher, row.Description)
	writeString(hasher, row.ResultID)
	for _, req := range row.Requirements {
		writeString(hasher, req)
	}
	section(hasher)
	writeSkills(hasher, row.Skills)
	writeString(hasher, strconv.Itoa(row.EffectiveTimePerPiece()))
}

// hashWorkerRow hashes one worker. Favorite products do not affect assignment
// and are left out.
func (h *Hasher) hashWorkerRow(row domain.WorkerRow, hasher *xxhash.Digest) {
	writeString(hasher, row.Name)
	writeSkills(hasher, row.Skills)
}

func writeSkills(hasher *xxhash.Digest, skills domain.SkillLevels) {
	for _, skill := range domain.CatalogSkills {
		_ = binary.Write(hasher, binary.LittleEndian, math.Float64bits(skills.Get(skill)))
	}
	// Skills outside the catalog columns are hashed by name.
	for _, skill := range skills.Skills() {
		if slices.Contains(domain.CatalogSkills, skill) {
			continue
		}
		writeString(hasher, string(skill))
		_ = binary.Write(hasher, binary.LittleEndian, math.Float64bits(skills.Get(skill)))
	}
	section(hasher)
}

func writeString(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0}) // Separator
}

func section(hasher *xxhash.Digest) {
	_, _ = hasher.Write([]byte{0})
}
