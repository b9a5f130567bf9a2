package domain

import (
	"math"
	"slices"
)

// Skill names a production capability shared by task requirements and worker proficiencies.
type Skill string

const (
	// SkillBending is folding board along scored lines.
	SkillBending Skill = "Bending"
	// SkillGluing is applying adhesive to seams and flaps.
	SkillGluing Skill = "Gluing"
	// SkillAssembling is joining sub-parts into a finished piece.
	SkillAssembling Skill = "Assembling"
	// SkillEdgeScrap is trimming waste from cut edges.
	SkillEdgeScrap Skill = "EdgeScrap"
	// SkillOpenPaper is unrolling and preparing paper stock.
	SkillOpenPaper Skill = "OpenPaper"
	// SkillQualityControl is inspecting finished pieces.
	SkillQualityControl Skill = "QualityControl"
)

// CatalogSkills lists the skill columns of the catalogs in column order.
var CatalogSkills = []Skill{
	SkillBending,
	SkillGluing,
	SkillAssembling,
	SkillEdgeScrap,
	SkillOpenPaper,
	SkillQualityControl,
}

// SkillLevels maps a skill to a level. Worker levels are percentages in [0,100];
// task requirements are ratios in [0,1].
type SkillLevels map[Skill]float64

// Get returns the level for a skill, or 0 when absent.
func (s SkillLevels) Get(skill Skill) float64 {
	if s == nil {
		return 0
	}
	v, ok := s[skill]
	if !ok {
		return 0
	}
	return v
}

// Skills returns the skills present in s in sorted order.
func (s SkillLevels) Skills() []Skill {
	keys := make([]Skill, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Ratios converts percentages to ratios clamped to [0,1]. NaN becomes 0.
func (s SkillLevels) Ratios() SkillLevels {
	out := make(SkillLevels, len(s))
	for k, v := range s {
		out[k] = clamp(v/100, 0, 1)
	}
	return out
}

// SanitizePercent maps NaN and infinities to 0 and clamps to [0,100].
func SanitizePercent(v float64) float64 {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
