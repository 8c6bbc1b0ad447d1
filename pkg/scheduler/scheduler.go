package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

var (
	ErrMissingDate     = errors.New("roster date is required")
	ErrInvalidDate     = errors.New("roster date must be YYYY-MM-DD")
	ErrMissingTemplate = errors.New("role template is required")
	ErrInvalidCutoff   = errors.New("extend_until must be 16, 17 or 18")
)

// Picker returns an index in [0, n). It is the only source of randomness in the engine.
type Picker func(n int) int

// FirstPicker always picks the first candidate
func FirstPicker(int) int { return 0 }

// Engine builds daily rosters. It holds no per-run state, so one Engine can
// serve concurrent Generate calls as long as each call gets its own inputs.
type Engine struct {
	cfg    *Config
	picker Picker
	logger *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithPicker replaces the random tie-break
func WithPicker(p Picker) Option {
	return func(e *Engine) { e.picker = p }
}

// WithLogger sets the logger used for shortfall and fallback events
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over cfg, falling back to the embedded configuration
func New(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the role configuration the engine runs with
func (e *Engine) Config() *Config {
	return e.cfg
}

// Generate assigns workers to the template's roles for every slot of the day
func (e *Engine) Generate(workers []models.Worker, tpl models.RoleTemplate, params models.RunParams) (*models.Roster, error) {
	date, err := validate(tpl, params)
	if err != nil {
		return nil, err
	}

	pick := e.picker
	if pick == nil {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		pick = r.Intn
	}

	roster := &models.Roster{Date: params.Date, Roles: tpl.Roles()}
	warn := func(w models.Warning) {
		roster.Warnings = append(roster.Warnings, w)
		e.logger.Warn(w.Message, "kind", w.Kind, "period", w.Period, "role", w.Role, "worker", w.Worker, "date", params.Date)
	}

	pool, defects := Partition(workers, date)
	for _, w := range defects {
		warn(w)
	}
	e.logger.Debug("partitioned workers", "date", params.Date, "early", len(pool.Early), "late", len(pool.Late))

	total := 0
	for _, p := range e.cfg.Periods {
		total += len(p.Slots)
	}
	// rows alias roster.Slots, so it must not grow after this point
	roster.Slots = make([]models.SlotRow, 0, total)
	rows := make(map[string][]models.SlotRow, len(e.cfg.Periods))
	for _, p := range e.cfg.Periods {
		start := len(roster.Slots)
		for _, label := range p.Slots {
			roster.Slots = append(roster.Slots, models.SlotRow{Label: label, Period: p.Name, Cells: map[string]string{}})
		}
		rows[p.Name] = roster.Slots[start:len(roster.Slots):len(roster.Slots)]
	}

	course := e.cfg.courseOrder(tpl)
	pairs := e.swapPairs(tpl)

	morning := e.runPass(passInput{
		period: models.PeriodMorning,
		pool:   pool,
		tpl:    tpl,
		ica:    e.cfg.icaRoles(params.ICAMorning),
		pick:   pick,
		warn:   warn,
	})
	mp, _ := e.cfg.period(models.PeriodMorning)
	e.fillPeriod(rows[models.PeriodMorning], morning.Cells, course, pairs, mp.swapIndex())

	afternoon := e.runPass(passInput{
		period:  models.PeriodAfternoon,
		pool:    pool,
		tpl:     tpl,
		ica:     e.cfg.icaRoles(params.ICAAfternoon),
		morning: morning.Ledger,
		pick:    pick,
		warn:    warn,
	})
	ap, _ := e.cfg.period(models.PeriodAfternoon)
	e.fillPeriod(rows[models.PeriodAfternoon], afternoon.Cells, course, pairs, ap.swapIndex())

	var last map[string]string
	if ar := rows[models.PeriodAfternoon]; len(ar) > 0 {
		last = ar[len(ar)-1].Cells
	}
	e.fillEvening(rows[models.PeriodEvening], pool, tpl, last, params.ExtendUntil, warn)

	BuildReport(roster, pool)
	return roster, nil
}

func validate(tpl models.RoleTemplate, params models.RunParams) (time.Time, error) {
	date, err := ValidateParams(params)
	if err != nil {
		return time.Time{}, err
	}
	if len(tpl.Columns) == 0 {
		return time.Time{}, ErrMissingTemplate
	}
	return date, nil
}

// ValidateParams checks the date and the evening cutoff of a run and returns the parsed date
func ValidateParams(params models.RunParams) (time.Time, error) {
	if params.Date == "" {
		return time.Time{}, ErrMissingDate
	}
	date, err := time.Parse("2006-01-02", params.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, params.Date)
	}
	switch params.ExtendUntil {
	case 0, 16, 17, 18:
	default:
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidCutoff, params.ExtendUntil)
	}
	return date, nil
}

// swapPairs keeps only the configured swaps whose two roles are both on the template
func (e *Engine) swapPairs(tpl models.RoleTemplate) [][]string {
	var pairs [][]string
	for _, p := range e.cfg.Swaps {
		if tpl.Has(p[0]) && tpl.Has(p[1]) {
			pairs = append(pairs, p)
		}
	}
	return pairs
}
