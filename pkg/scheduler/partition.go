package scheduler

import (
	"fmt"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
)

// Warning kinds recorded on a roster
const (
	WarnShortfall       = "shortfall"
	WarnRepeatFallback  = "repeat_fallback"
	WarnForcedFill      = "forced_fill"
	WarnBadWindow       = "bad_window"
	WarnDuplicateWorker = "duplicate_worker"
	WarnEveningConflict = "evening_conflict"
)

var windowLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Placement is a worker resolved into a pool together with the window that put them there
type Placement struct {
	Worker models.Worker
	Start  time.Time
	End    time.Time
	Late   bool
}

// ShiftPool splits the day's workers into early and late shift lists
type ShiftPool struct {
	Early []Placement
	Late  []Placement
}

// All returns early workers followed by late workers
func (p ShiftPool) All() []Placement {
	all := make([]Placement, 0, len(p.Early)+len(p.Late))
	all = append(all, p.Early...)
	return append(all, p.Late...)
}

// ParseWindowTime accepts the timestamp layouts used by the worker store and sheet imports
func ParseWindowTime(s string) (time.Time, error) {
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// Partition places each worker into the early or late pool using the first
// availability window covering date. Workers with no covering window are left
// out. Unparsable windows are skipped and reported.
func Partition(workers []models.Worker, date time.Time) (ShiftPool, []models.Warning) {
	var pool ShiftPool
	var warnings []models.Warning
	seen := make(map[string]bool, len(workers))

	for _, w := range workers {
		if seen[w.Name] {
			warnings = append(warnings, models.Warning{
				Kind:    WarnDuplicateWorker,
				Worker:  w.Name,
				Message: "duplicate worker name ignored",
			})
			continue
		}
		seen[w.Name] = true

		for _, win := range w.Availability {
			start, errStart := ParseWindowTime(win.Start)
			end, errEnd := ParseWindowTime(win.End)
			if errStart != nil || errEnd != nil || end.Before(start) {
				warnings = append(warnings, models.Warning{
					Kind:    WarnBadWindow,
					Worker:  w.Name,
					Message: fmt.Sprintf("skipping availability window %q - %q", win.Start, win.End),
				})
				continue
			}
			if !coversDate(start, end, date) {
				continue
			}

			p := Placement{Worker: w, Start: start, End: end, Late: win.IsLateShift}
			if win.IsLateShift {
				pool.Late = append(pool.Late, p)
			} else {
				pool.Early = append(pool.Early, p)
			}
			break
		}
	}
	return pool, warnings
}

func coversDate(start, end, date time.Time) bool {
	d := dayOf(date)
	return !dayOf(start).After(d) && !dayOf(end).Before(d)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
