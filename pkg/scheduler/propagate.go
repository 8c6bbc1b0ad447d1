package scheduler

import (
	"github.com/arnavshah/day-planner-go/pkg/models"
)

// Rotate moves every worker down one role; the last worker wraps to the first role.
// Applying it len(workers) times gives back the original order.
func Rotate(workers []string) []string {
	n := len(workers)
	out := make([]string, 0, n)
	if n == 0 {
		return out
	}
	out = append(out, workers[n-1])
	return append(out, workers[:n-1]...)
}

// SwapPairs returns a copy of cells with the occupants of each pair exchanged
func SwapPairs(cells map[string]string, pairs [][]string) map[string]string {
	out := copyCells(cells)
	for _, pair := range pairs {
		a, b := cells[pair[0]], cells[pair[1]]
		setCell(out, pair[0], b)
		setCell(out, pair[1], a)
	}
	return out
}

// fillPeriod writes the first-slot assignment across every row of a period.
// Held roles keep their worker, swap pairs exchange from swapAt onwards and
// the course list rotates once per slot. pairs holds only the swaps whose two
// roles are both on the template.
func (e *Engine) fillPeriod(rows []models.SlotRow, first map[string]string, course []string, pairs [][]string, swapAt int) {
	carried := toSet(e.cfg.Hold)
	// a swap role without its partner on the template is held unswapped
	for _, pair := range e.cfg.Swaps {
		carried[pair[0]] = true
		carried[pair[1]] = true
	}
	for _, role := range course {
		carried[role] = true
	}

	base := make(map[string]string)
	for role, name := range first {
		if carried[role] {
			base[role] = name
		}
	}
	swapped := SwapPairs(base, pairs)

	rotation := make([]string, len(course))
	for i, role := range course {
		rotation[i] = first[role]
	}

	for k := range rows {
		var cells map[string]string
		switch {
		case k == 0:
			cells = copyCells(first)
		case swapAt > 0 && k >= swapAt:
			cells = copyCells(swapped)
		default:
			cells = copyCells(base)
		}
		for i, role := range course {
			setCell(cells, role, rotation[i])
		}
		rows[k].Cells = cells
		rotation = Rotate(rotation)
	}
}

func copyCells(cells map[string]string) map[string]string {
	out := make(map[string]string, len(cells))
	for k, v := range cells {
		out[k] = v
	}
	return out
}

func setCell(cells map[string]string, role, name string) {
	if name == "" {
		delete(cells, role)
		return
	}
	cells[role] = name
}
