package scheduler

import (
	"slices"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

// BuildReport fills the spare lists and the on-duty summary from the final
// slots. It only reads the assignment table.
func BuildReport(roster *models.Roster, pool ShiftPool) {
	roster.SpareMorning = spareWorkers(roster, pool, models.PeriodMorning)
	roster.SpareAfternoon = spareWorkers(roster, pool, models.PeriodAfternoon)
	roster.OnDuty = onDuty(pool)
}

func spareWorkers(roster *models.Roster, pool ShiftPool, period string) []string {
	assigned := make(map[string]bool)
	for _, row := range roster.Slots {
		if row.Period != period {
			continue
		}
		for _, name := range row.Cells {
			assigned[name] = true
		}
	}

	spare := []string{}
	for _, pl := range pool.All() {
		if !assigned[pl.Worker.Name] {
			spare = append(spare, pl.Worker.Name)
		}
	}
	return spare
}

// onDuty lists every pooled worker by shift start, keeping pool order on ties
func onDuty(pool ShiftPool) []models.DutyEntry {
	all := pool.All()
	entries := make([]models.DutyEntry, 0, len(all))
	for _, pl := range all {
		entries = append(entries, models.DutyEntry{
			Name:        pl.Worker.Name,
			Start:       pl.Start,
			End:         pl.End,
			IsLateShift: pl.Late,
		})
	}
	slices.SortStableFunc(entries, func(a, b models.DutyEntry) int {
		return a.Start.Compare(b.Start)
	})
	return entries
}
