package simulator

import (
	"cmp"
	"fmt"
	"slices"

	"go.trai.ch/taskmill/internal/core/domain"
)

// Expand turns an order into task instances, one per catalog row of each ordered
// product, each starting at the product's order quantity. Instances are sorted by
// task id, then product, then catalog position.
//
// The returned warnings name ordered products that have no catalog rows.
func Expand(order domain.Order, rows []domain.TaskRow) ([]domain.TaskInstance, []string, error) {
	lines, err := order.Lines()
	if err != nil {
		return nil, nil, err
	}

	type indexed struct {
		pos int
		row domain.TaskRow
	}
	byProduct := make(map[string][]indexed)
	for i, row := range rows {
		byProduct[row.Product] = append(byProduct[row.Product], indexed{pos: i, row: row})
	}

	var picked []indexed
	qty := make(map[string]int, len(lines))
	var warnings []string
	for _, line := range lines {
		matches, ok := byProduct[line.Product]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("product %q is ordered but has no tasks in the catalog", line.Product))
			continue
		}
		qty[line.Product] = line.Quantity
		picked = append(picked, matches...)
	}

	slices.SortFunc(picked, func(a, b indexed) int {
		if c := cmp.Compare(a.row.ResultID, b.row.ResultID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.row.Product, b.row.Product); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	instances := make([]domain.TaskInstance, 0, len(picked))
	for _, p := range picked {
		instances = append(instances, newInstance(p.row, qty[p.row.Product]))
	}
	return instances, warnings, nil
}

func newInstance(row domain.TaskRow, quantity int) domain.TaskInstance {
	return domain.TaskInstance{
		Product:      row.Product,
		TaskID:       row.ResultID,
		Description:  row.Description,
		Requirements: slices.Clone(row.Requirements),
		Skills:       row.Skills.Ratios(),
		TimePerPiece: row.EffectiveTimePerPiece(),
		TargetQty:    quantity,
		Remaining:    quantity,
	}
}
