package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	RosterSheet = "Roster"
	timeLayout  = "2006-01-02T15:04:05"
)

var (
	ErrNoWorksheet  = errors.New("no worksheet found")
	ErrEmptySheet   = errors.New("worksheet is empty")
	ErrMissingField = errors.New("missing required column")
)

// RowError describes a spreadsheet row that was skipped
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// readRows returns every row of the first worksheet
func readRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// ParseTemplate reads the header row of a role template document. The first
// column always holds slot times, whatever its header says; every other
// non-empty header names a role.
func ParseTemplate(r io.Reader, name string) (models.RoleTemplate, error) {
	rows, err := readRows(r)
	if err != nil {
		return models.RoleTemplate{}, fmt.Errorf("read template %s: %w", name, err)
	}

	tpl := models.RoleTemplate{Name: name, Columns: make(map[string]int)}
	for i, cell := range rows[0] {
		role := strings.TrimSpace(cell)
		if i == 0 || role == "" {
			continue
		}
		if _, dup := tpl.Columns[role]; !dup {
			tpl.Columns[role] = i
		}
	}
	if len(tpl.Columns) == 0 {
		return tpl, fmt.Errorf("template %s: header row names no roles", name)
	}
	return tpl, nil
}

// ParseAvailability reads a worker availability sheet with the columns
// name, qualifications, start, end and late. Rows for the same name add
// windows to one worker. Bad rows are skipped and reported.
func ParseAvailability(r io.Reader) ([]models.Worker, []RowError, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, nil, err
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	for _, required := range []string{"name", "start", "end"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingField, required)
		}
	}
	col := func(row []string, key string) string {
		idx, ok := cols[key]
		if !ok {
			return ""
		}
		return cellValue(row, idx)
	}

	var workers []models.Worker
	index := make(map[string]int)
	var skipped []RowError

	for i, row := range rows[1:] {
		line := i + 2
		name := col(row, "name")
		if name == "" {
			continue
		}
		start, err := normalizeTime(col(row, "start"))
		if err != nil {
			skipped = append(skipped, RowError{Row: line, Reason: err.Error()})
			continue
		}
		end, err := normalizeTime(col(row, "end"))
		if err != nil {
			skipped = append(skipped, RowError{Row: line, Reason: err.Error()})
			continue
		}
		window := models.AvailabilityWindow{Start: start, End: end, IsLateShift: parseFlag(col(row, "late"))}

		pos, ok := index[name]
		if !ok {
			workers = append(workers, models.Worker{Name: name, Qualifications: splitQualifications(col(row, "qualifications"))})
			pos = len(workers) - 1
			index[name] = pos
		}
		workers[pos].Availability = append(workers[pos].Availability, window)
	}
	return workers, skipped, nil
}

// WriteRoster renders a roster into an xlsx workbook: one row per slot with
// roles in their template columns, then the spare lists and the duty summary.
func WriteRoster(w io.Writer, roster *models.Roster, tpl models.RoleTemplate) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), RosterSheet); err != nil {
		return err
	}

	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(RosterSheet, cell, value)
	}

	if err := set(1, 1, "Time"); err != nil {
		return err
	}
	for role, col := range tpl.Columns {
		if col < 1 {
			continue
		}
		if err := set(col+1, 1, role); err != nil {
			return err
		}
	}

	row := 2
	for _, slot := range roster.Slots {
		if err := set(1, row, slot.Label); err != nil {
			return err
		}
		for role, name := range slot.Cells {
			col, ok := tpl.Columns[role]
			if !ok || col < 1 {
				continue
			}
			if err := set(col+1, row, name); err != nil {
				return err
			}
		}
		row++
	}

	sections := []struct {
		title string
		lines []string
	}{
		{"Spare (morning)", roster.SpareMorning},
		{"Spare (afternoon)", roster.SpareAfternoon},
		{"Instructors on duty", dutyLines(roster.OnDuty)},
	}
	for _, s := range sections {
		row++
		if err := set(1, row, s.title); err != nil {
			return err
		}
		row++
		for _, line := range s.lines {
			if err := set(1, row, line); err != nil {
				return err
			}
			row++
		}
	}

	return f.Write(w)
}

func dutyLines(entries []models.DutyEntry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitQualifications(s string) []string {
	var quals []string
	for _, part := range strings.Split(s, ",") {
		q := strings.ToUpper(strings.TrimSpace(part))
		if q != "" {
			quals = append(quals, q)
		}
	}
	return quals
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "y", "yes", "true", "late":
		return true
	}
	return false
}

var inputLayouts = []string{
	time.RFC3339,
	timeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
}

// normalizeTime accepts Excel serial dates and common text layouts and
// returns the value in the layout the worker store uses
func normalizeTime(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty time")
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", err
		}
		return t.Format(timeLayout), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognised time %q", value)
}
