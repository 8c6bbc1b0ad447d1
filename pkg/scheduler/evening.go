package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

const maxEveningICA = 4

// fillEvening writes the evening block: up to four ICA-qualified late workers
// hold the ICA columns, and the last afternoon row is carried into every slot
// whose hour is at or before the extend cutoff hour.
func (e *Engine) fillEvening(rows []models.SlotRow, pool ShiftPool, tpl models.RoleTemplate, last map[string]string, extendUntil int, warn func(models.Warning)) {
	var icaRoles []string
	for _, role := range e.cfg.Categories.ICA {
		if tpl.Has(role) && len(icaRoles) < maxEveningICA {
			icaRoles = append(icaRoles, role)
		}
	}

	var late []string
	for _, pl := range pool.Late {
		if len(late) == len(icaRoles) {
			break
		}
		if pl.Worker.HasQualification(models.QualICA) {
			late = append(late, pl.Worker.Name)
		}
	}

	reported := make(map[string]bool)
	for k := range rows {
		cells := make(map[string]string)
		placed := make(map[string]bool)
		for i, name := range late {
			cells[icaRoles[i]] = name
			placed[name] = true
		}

		if extendUntil > 0 && slotHour(rows[k].Label) <= extendUntil {
			for _, role := range e.cfg.EveningCarry {
				name := last[role]
				if !tpl.Has(role) || name == "" {
					continue
				}
				if placed[name] {
					if !reported[name] {
						reported[name] = true
						warn(models.Warning{
							Kind:    WarnEveningConflict,
							Period:  models.PeriodEvening,
							Role:    role,
							Worker:  name,
							Message: fmt.Sprintf("%s already covers ICA in the evening, leaving %s open", name, role),
						})
					}
					continue
				}
				cells[role] = name
				placed[name] = true
			}
		}
		rows[k].Cells = cells
	}
}

// slotHour parses the hour of a "15:04" slot label, or 24 if the label is not a time
func slotHour(label string) int {
	h, _, ok := strings.Cut(label, ":")
	if !ok {
		return 24
	}
	n, err := strconv.Atoi(h)
	if err != nil {
		return 24
	}
	return n
}
