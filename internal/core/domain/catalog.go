package domain

import "strings"

// DefaultTimePerPieceSeconds is used when a task row has no usable time-per-piece.
const DefaultTimePerPieceSeconds = 60

// TaskRow is one row of the product/task catalog.
type TaskRow struct {
	Product     string `json:"product"`
	Description string `json:"task"`
	ResultID    string `json:"result"`
	// Requirements lists the task ids that must be in inventory before this task can run.
	Requirements []string `json:"requirements,omitempty"`
	// Skills holds required proficiencies as percentages in [0,100].
	Skills SkillLevels `json:"skills,omitempty"`
	// TimePerPieceSeconds is zero when the catalog left it blank.
	TimePerPieceSeconds int `json:"time_per_piece_seconds,omitzero"`
}

// EffectiveTimePerPiece returns the time-per-piece, defaulted when unset or invalid.
func (r TaskRow) EffectiveTimePerPiece() int {
	if r.TimePerPieceSeconds < 1 {
		return DefaultTimePerPieceSeconds
	}
	return r.TimePerPieceSeconds
}

// WorkerRow is one row of the worker catalog.
type WorkerRow struct {
	Name string `json:"worker"`
	// Skills holds proficiencies as percentages in [0,100].
	Skills SkillLevels `json:"skills,omitempty"`
	// FavoriteProducts is indexed by favourite column. Blank columns are empty
	// strings; trailing blanks are dropped.
	FavoriteProducts []string `json:"favorite_products,omitempty"`
}

// Catalog is an in-memory snapshot of both catalogs.
type Catalog struct {
	Tasks   []TaskRow   `json:"tasks"`
	Workers []WorkerRow `json:"workers"`
}

// Worker looks up a worker by name.
func (c *Catalog) Worker(name string) (WorkerRow, bool) {
	for _, w := range c.Workers {
		if w.Name == name {
			return w, true
		}
	}
	return WorkerRow{}, false
}

// Products returns the distinct product ids in catalog order.
func (c *Catalog) Products() []string {
	seen := make(map[string]bool)
	var products []string
	for _, t := range c.Tasks {
		if seen[t.Product] {
			continue
		}
		seen[t.Product] = true
		products = append(products, t.Product)
	}
	return products
}

// ParseRequirements splits a comma-separated prerequisite cell.
// Blank cells and NaN-like placeholders yield an empty list.
func ParseRequirements(cell string) []string {
	cell = strings.TrimSpace(cell)
	if IsMissing(cell) {
		return nil
	}
	var reqs []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if part == "" || IsMissing(part) {
			continue
		}
		reqs = append(reqs, part)
	}
	return reqs
}

// ParseFavorites keeps favourite cells at their column positions, blanking
// missing ones and dropping trailing blanks.
func ParseFavorites(cells []string) []string {
	favorites := make([]string, len(cells))
	last := -1
	for i, cell := range cells {
		if IsMissing(cell) {
			continue
		}
		favorites[i] = cell
		last = i
	}
	if last < 0 {
		return nil
	}
	return favorites[:last+1]
}

// IsMissing reports whether a catalog cell is blank or a NaN-like placeholder.
func IsMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "n/a", "na":
		return true
	default:
		return false
	}
}
