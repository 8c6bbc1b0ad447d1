package scheduler

import (
	"fmt"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

type passInput struct {
	period  string
	pool    ShiftPool
	tpl     models.RoleTemplate
	ica     []string
	morning map[string][]string
	pick    Picker
	warn    func(models.Warning)
}

// passResult is what one period contributes to the roster: the first-slot
// assignment, the worker -> roles ledger and the names used in the period.
type passResult struct {
	Cells  map[string]string
	Ledger map[string][]string
	Used   map[string]bool
}

type pass struct {
	passInput
	cfg      *Config
	active   map[string]bool
	critical map[string]bool
	passResult
}

func (e *Engine) runPass(in passInput) passResult {
	p := &pass{
		passInput: in,
		cfg:       e.cfg,
		active:    toSet(in.ica),
		critical:  toSet(e.cfg.Critical),
		passResult: passResult{
			Cells:  make(map[string]string),
			Ledger: make(map[string][]string),
			Used:   make(map[string]bool),
		},
	}
	p.assignPriority()
	p.fillFallback()
	return p.passResult
}

// assignPriority walks the priority list once, picking at random among eligible workers
func (p *pass) assignPriority() {
	for _, role := range p.cfg.Priority {
		if !p.tpl.Has(role) {
			continue
		}
		if p.cfg.CategoryOf(role) == CategoryICA && !p.active[role] {
			continue
		}

		candidates, repeated := Eligible(p.cfg, p.pool, role, p.Used, p.morning)
		if repeated {
			p.warn(models.Warning{
				Kind:    WarnRepeatFallback,
				Period:  p.period,
				Role:    role,
				Message: fmt.Sprintf("no fresh worker for %s, reusing a morning %s worker", role, p.cfg.CategoryOf(role)),
			})
		}
		if len(candidates) == 0 {
			// Host and Dekit are retried by the fallback filler
			if !p.critical[role] {
				p.shortfall(role)
			}
			continue
		}

		w := candidates[p.pick(len(candidates))]
		p.place(role, w.Name)
	}
}

func (p *pass) place(role, name string) {
	p.Cells[role] = name
	p.Used[name] = true
	p.Ledger[name] = append(p.Ledger[name], role)
}

func (p *pass) shortfall(role string) {
	p.warn(models.Warning{
		Kind:    WarnShortfall,
		Period:  p.period,
		Role:    role,
		Message: fmt.Sprintf("no eligible worker for %s", role),
	})
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
