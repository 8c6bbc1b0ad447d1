package models

import (
	"sort"
	"time"
)

// Qualification tags a worker may hold
const (
	QualKitUp    = "KITUP"
	QualAATT     = "AATT"
	QualMiniTrek = "MT"
	QualICA      = "ICA"
)

// Period names used across the roster
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
)

// AvailabilityWindow is one stretch of time a worker can be rostered.
// Start and End are kept as text so a single bad entry can be skipped
// without rejecting the whole worker record.
type AvailabilityWindow struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	IsLateShift bool   `json:"is_late_shift"`
}

// Worker represents a person who can be placed on the roster
type Worker struct {
	ID             uint                 `json:"id,omitempty"`
	Name           string               `json:"name"`
	Qualifications []string             `json:"qualifications"`
	Availability   []AvailabilityWindow `json:"availability"`
}

// HasQualification reports whether the worker carries the given tag
func (w Worker) HasQualification(tag string) bool {
	for _, q := range w.Qualifications {
		if q == tag {
			return true
		}
	}
	return false
}

// RoleTemplate maps each role present on the day's template to its column
type RoleTemplate struct {
	Name    string         `json:"name,omitempty"`
	Columns map[string]int `json:"columns"`
}

// Has reports whether the role appears on the template
func (t RoleTemplate) Has(role string) bool {
	_, ok := t.Columns[role]
	return ok
}

// Roles returns the template's role names in column order
func (t RoleTemplate) Roles() []string {
	roles := make([]string, 0, len(t.Columns))
	for r := range t.Columns {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool {
		ci, cj := t.Columns[roles[i]], t.Columns[roles[j]]
		if ci != cj {
			return ci < cj
		}
		return roles[i] < roles[j]
	})
	return roles
}

// RunParams carries the per-call knobs of a roster generation
type RunParams struct {
	Date         string `json:"date"`
	ICAMorning   int    `json:"ica_morning"`
	ICAAfternoon int    `json:"ica_afternoon"`
	ExtendUntil  int    `json:"extend_until,omitempty"`
}

// SlotRow is one half-hour row of the roster
type SlotRow struct {
	Label  string            `json:"label"`
	Period string            `json:"period"`
	Cells  map[string]string `json:"cells"`
}

// Warning records a non-fatal event raised while building a roster
type Warning struct {
	Kind    string `json:"kind"`
	Period  string `json:"period,omitempty"`
	Role    string `json:"role,omitempty"`
	Worker  string `json:"worker,omitempty"`
	Message string `json:"message"`
}

// DutyEntry is one line of the "Instructors on duty" summary
type DutyEntry struct {
	Name        string    `json:"name"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsLateShift bool      `json:"is_late_shift"`
}

// String renders the entry the way the duty summary prints it
func (d DutyEntry) String() string {
	return d.Name + " " + d.Start.Format("15:04") + "-" + d.End.Format("15:04")
}

// Roster is the full result of one generation call
type Roster struct {
	Date           string      `json:"date"`
	Roles          []string    `json:"roles"`
	Slots          []SlotRow   `json:"slots"`
	SpareMorning   []string    `json:"spare_morning"`
	SpareAfternoon []string    `json:"spare_afternoon"`
	OnDuty         []DutyEntry `json:"on_duty"`
	Warnings       []Warning   `json:"warnings,omitempty"`
}

// Cell returns the worker written at (slot, role), or ""
func (r *Roster) Cell(slot int, role string) string {
	if slot < 0 || slot >= len(r.Slots) {
		return ""
	}
	return r.Slots[slot].Cells[role]
}

// RosterRequest is the data structure for the roster endpoint
type RosterRequest struct {
	Date         string   `json:"date" binding:"required"`
	Template     string   `json:"template" binding:"required"`
	ICAMorning   int      `json:"ica_morning"`
	ICAAfternoon int      `json:"ica_afternoon"`
	ExtendUntil  int      `json:"extend_until"`
	Workers      []Worker `json:"workers,omitempty"`
}

// RunParams returns the generation knobs carried by the request
func (r RosterRequest) RunParams() RunParams {
	return RunParams{
		Date:         r.Date,
		ICAMorning:   r.ICAMorning,
		ICAAfternoon: r.ICAAfternoon,
		ExtendUntil:  r.ExtendUntil,
	}
}

// RosterResponse wraps a stored roster with its run id
type RosterResponse struct {
	ID     string  `json:"id"`
	Roster *Roster `json:"roster"`
}
