package scheduler

import (
	"fmt"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

// fillFallback makes sure no KITUP worker sits idle while a shed role is
// open, then fills Host and Dekit from whoever is left.
func (p *pass) fillFallback() {
	p.drainKitUp(p.cfg.KitUpPrimary)
	p.drainKitUp(p.cfg.KitUpSecondary)

	for _, role := range p.cfg.Critical {
		if !p.open(role) {
			continue
		}
		var candidates []string
		for _, pl := range p.pool.Early {
			if !p.Used[pl.Worker.Name] {
				candidates = append(candidates, pl.Worker.Name)
			}
		}
		if len(candidates) > 0 {
			p.place(role, candidates[p.pick(len(candidates))])
		}
	}

	for _, role := range p.cfg.Critical {
		if !p.open(role) {
			continue
		}
		name, ok := p.firstUnused(func(models.Worker) bool { return true })
		if !ok {
			p.shortfall(role)
			continue
		}
		p.place(role, name)
		p.warn(models.Warning{
			Kind:    WarnForcedFill,
			Period:  p.period,
			Role:    role,
			Worker:  name,
			Message: fmt.Sprintf("forced %s onto %s", name, role),
		})
	}
}

// drainKitUp fills open roles in order with the first unused KITUP workers
func (p *pass) drainKitUp(roles []string) {
	for _, role := range roles {
		if !p.open(role) {
			continue
		}
		name, ok := p.firstUnused(func(w models.Worker) bool { return w.HasQualification(models.QualKitUp) })
		if !ok {
			return
		}
		p.place(role, name)
	}
}

func (p *pass) open(role string) bool {
	return p.tpl.Has(role) && p.Cells[role] == ""
}

func (p *pass) firstUnused(accept func(models.Worker) bool) (string, bool) {
	for _, pl := range p.pool.All() {
		if !p.Used[pl.Worker.Name] && accept(pl.Worker) {
			return pl.Worker.Name, true
		}
	}
	return "", false
}
