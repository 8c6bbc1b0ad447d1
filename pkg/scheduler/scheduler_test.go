package scheduler

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2024-06-01"

func early(name string, quals ...string) models.Worker {
	return models.Worker{
		Name:           name,
		Qualifications: quals,
		Availability: []models.AvailabilityWindow{
			{Start: "2024-06-01T09:00:00", End: "2024-06-01T17:00:00"},
		},
	}
}

func late(name string, quals ...string) models.Worker {
	return models.Worker{
		Name:           name,
		Qualifications: quals,
		Availability: []models.AvailabilityWindow{
			{Start: "2024-06-01T12:00:00", End: "2024-06-01T20:00:00", IsLateShift: true},
		},
	}
}

func tmpl(roles ...string) models.RoleTemplate {
	cols := make(map[string]int, len(roles))
	for i, r := range roles {
		cols[r] = i + 1
	}
	return models.RoleTemplate{Name: "test", Columns: cols}
}

func quietEngine(opts ...Option) *Engine {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(nil, opts...)
}

func warningsOf(r *models.Roster, kind, period string) []models.Warning {
	var out []models.Warning
	for _, w := range r.Warnings {
		if w.Kind == kind && (period == "" || w.Period == period) {
			out = append(out, w)
		}
	}
	return out
}

func TestGenerate_SmallTemplate(t *testing.T) {
	workers := []models.Worker{
		early("A", models.QualICA, models.QualKitUp),
		early("B", models.QualICA),
		early("C", models.QualAATT),
		early("D", models.QualAATT),
		early("E", models.QualMiniTrek),
		early("F"),
	}
	tpl := tmpl("ICA 1", "ICA 2", "Mini Trek", "Host", "Dekit")

	for i := 0; i < 50; i++ {
		r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate})
		require.NoError(t, err)

		ica := []string{r.Cell(0, "ICA 1"), r.Cell(0, "ICA 2")}
		assert.ElementsMatch(t, []string{"A", "B"}, ica)
		assert.Equal(t, "E", r.Cell(0, "Mini Trek"))

		host, dekit := r.Cell(0, "Host"), r.Cell(0, "Dekit")
		assert.Contains(t, []string{"C", "D", "F"}, host)
		assert.Contains(t, []string{"C", "D", "F"}, dekit)
		assert.NotEqual(t, host, dekit)

		// six workers, five roles: exactly one of C, D, F is left over
		require.Len(t, r.SpareMorning, 1)
		assert.Contains(t, []string{"C", "D", "F"}, r.SpareMorning[0])
		assert.NotContains(t, []string{host, dekit}, r.SpareMorning[0])
	}
}

func fullTemplate() models.RoleTemplate {
	return tmpl(
		"ICA 1", "ICA 2", "ICA 3", "ICA 4", "Mini Trek",
		"Aerial Lead", "Aerial 1", "Aerial 2", "Aerial 3", "Aerial 4",
		"Tree Trek 1", "Tree Trek 2",
		"Kit Up 1", "Kit Up 2", "Kit Up 3", "Clip In 1", "Clip In 2", "Host", "Dekit",
	)
}

func fullCrew() []models.Worker {
	return []models.Worker{
		early("Ava", models.QualICA, models.QualAATT),
		early("Ben", models.QualICA),
		early("Cal", models.QualICA, models.QualKitUp),
		early("Dee", models.QualMiniTrek, models.QualAATT),
		early("Eli", models.QualMiniTrek),
		early("Fay", models.QualAATT),
		early("Gus", models.QualAATT, models.QualKitUp),
		early("Hal", models.QualAATT),
		early("Ivy", models.QualAATT),
		early("Jon", models.QualAATT),
		early("Kim", models.QualKitUp),
		early("Lou", models.QualKitUp),
		early("Max", models.QualKitUp),
		early("Ned"),
		late("Oli", models.QualAATT, models.QualKitUp),
		late("Pat", models.QualICA, models.QualKitUp),
		late("Quin", models.QualICA),
		late("Rae"),
	}
}

func TestGenerate_NoWorkerTwiceInASlot(t *testing.T) {
	for i := 0; i < 30; i++ {
		r, err := quietEngine().Generate(fullCrew(), fullTemplate(), models.RunParams{
			Date: testDate, ICAMorning: 3, ICAAfternoon: 2, ExtendUntil: 18,
		})
		require.NoError(t, err)

		for _, row := range r.Slots {
			seen := make(map[string]string)
			for role, name := range row.Cells {
				prev, dup := seen[name]
				assert.False(t, dup, "slot %s: %s on both %s and %s", row.Label, name, prev, role)
				seen[name] = role
			}
		}
	}
}

func TestGenerate_QualifiedWorkersOnly(t *testing.T) {
	byName := make(map[string]models.Worker)
	for _, w := range fullCrew() {
		byName[w.Name] = w
	}
	cfg := DefaultConfig()
	required := map[string]string{
		CategoryICA:      models.QualICA,
		CategoryMiniTrek: models.QualMiniTrek,
		CategoryCourse:   models.QualAATT,
		CategoryAerial:   models.QualAATT,
		CategoryTreeTrek: models.QualAATT,
		CategoryShed:     models.QualKitUp,
	}
	critical := toSet(cfg.Critical)

	for i := 0; i < 30; i++ {
		r, err := quietEngine().Generate(fullCrew(), fullTemplate(), models.RunParams{Date: testDate, ICAMorning: 4})
		require.NoError(t, err)

		for _, row := range r.Slots {
			for role, name := range row.Cells {
				if critical[role] {
					continue
				}
				tag := required[cfg.CategoryOf(role)]
				assert.True(t, byName[name].HasQualification(tag), "%s on %s at %s lacks %s", name, role, row.Label, tag)
			}
		}
	}
}

func TestGenerate_NoICAWorkers(t *testing.T) {
	workers := []models.Worker{
		early("K1", models.QualKitUp),
		early("K2", models.QualAATT),
		late("L1", models.QualICA),
	}
	tpl := tmpl("ICA 1", "ICA 2", "ICA 3", "ICA 4", "Host")

	r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate, ICAMorning: 4})
	require.NoError(t, err)

	for _, row := range r.Slots {
		if row.Period != models.PeriodMorning {
			continue
		}
		for _, role := range []string{"ICA 1", "ICA 2", "ICA 3", "ICA 4"} {
			assert.Empty(t, row.Cells[role], "%s at %s", role, row.Label)
		}
	}

	var roles []string
	for _, w := range warningsOf(r, WarnShortfall, models.PeriodMorning) {
		roles = append(roles, w.Role)
	}
	assert.ElementsMatch(t, []string{"ICA 1", "ICA 2", "ICA 3", "ICA 4"}, roles)
	assert.Equal(t, "K1", r.Cell(0, "Host"))
}

func TestGenerate_ICAHeadcountClamped(t *testing.T) {
	workers := []models.Worker{
		early("I1", models.QualICA),
		early("I2", models.QualICA),
		early("I3", models.QualICA),
		early("I4", models.QualICA),
		early("I5", models.QualICA),
	}
	tpl := tmpl("ICA 1", "ICA 2", "ICA 3", "ICA 4")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{
		Date: testDate, ICAMorning: 1, ICAAfternoon: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, "I1", r.Cell(0, "ICA 1"))
	assert.Equal(t, "I2", r.Cell(0, "ICA 2"))
	assert.Empty(t, r.Cell(0, "ICA 3"))

	first := firstSlot(r, models.PeriodAfternoon)
	for _, role := range []string{"ICA 1", "ICA 2", "ICA 3", "ICA 4"} {
		assert.NotEmpty(t, r.Cell(first, role), role)
	}
}

func firstSlot(r *models.Roster, period string) int {
	for i, row := range r.Slots {
		if row.Period == period {
			return i
		}
	}
	return -1
}

func TestGenerate_CourseRotation(t *testing.T) {
	workers := []models.Worker{
		early("W1", models.QualAATT),
		early("W2", models.QualAATT),
		early("W3", models.QualAATT),
		early("W4", models.QualAATT),
		early("W5", models.QualAATT),
	}
	tpl := tmpl("Aerial Lead", "Aerial 1", "Aerial 2", "Aerial 3", "Aerial 4")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Aerial Lead": "W1", "Aerial 1": "W2", "Aerial 2": "W3", "Aerial 3": "W4", "Aerial 4": "W5",
	}, r.Slots[0].Cells)
	assert.Equal(t, map[string]string{
		"Aerial Lead": "W5", "Aerial 1": "W1", "Aerial 2": "W2", "Aerial 3": "W3", "Aerial 4": "W4",
	}, r.Slots[1].Cells)
	// five roles, five rotations
	assert.Equal(t, r.Slots[0].Cells, r.Slots[5].Cells)
}

func TestGenerate_LateWorkersKeptOffCourse(t *testing.T) {
	workers := []models.Worker{
		late("L1", models.QualAATT),
		late("L2", models.QualAATT),
	}
	tpl := tmpl("Aerial 1", "Aerial 2", "Tree Trek 1")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, r.Cell(0, "Aerial 1"))
	assert.Empty(t, r.Cell(0, "Aerial 2"))
	assert.Equal(t, "L1", r.Cell(0, "Tree Trek 1"))
}

func TestGenerate_ScheduledSwap(t *testing.T) {
	workers := []models.Worker{
		early("X", models.QualKitUp),
		early("Y", models.QualKitUp),
		early("P", models.QualKitUp),
		early("Q", models.QualKitUp),
	}
	tpl := tmpl("Kit Up 2", "Kit Up 3", "Clip In 1", "Clip In 2")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	before := map[string]string{"Kit Up 2": "X", "Kit Up 3": "Y", "Clip In 1": "P", "Clip In 2": "Q"}
	after := map[string]string{"Kit Up 2": "P", "Kit Up 3": "Q", "Clip In 1": "X", "Clip In 2": "Y"}

	for i, row := range r.Slots {
		if row.Period != models.PeriodMorning {
			continue
		}
		if row.Label < "10:30" {
			assert.Equal(t, before, r.Slots[i].Cells, row.Label)
		} else {
			assert.Equal(t, after, r.Slots[i].Cells, row.Label)
		}
	}
}

func TestGenerate_HoldRolesStatic(t *testing.T) {
	r, err := quietEngine().Generate(fullCrew(), fullTemplate(), models.RunParams{Date: testDate, ICAMorning: 4})
	require.NoError(t, err)

	for _, role := range DefaultConfig().Hold {
		for i, row := range r.Slots {
			if row.Period == models.PeriodMorning {
				assert.Equal(t, r.Cell(0, role), r.Cell(i, role), "%s at %s", role, row.Label)
			}
		}
	}
}

func TestGenerate_AfternoonAvoidsMorningCategory(t *testing.T) {
	workers := []models.Worker{
		early("A", models.QualAATT),
		early("B", models.QualAATT),
	}
	tpl := tmpl("Tree Trek 1")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "A", r.Cell(0, "Tree Trek 1"))
	assert.Equal(t, "B", r.Cell(firstSlot(r, models.PeriodAfternoon), "Tree Trek 1"))
	assert.Empty(t, warningsOf(r, WarnRepeatFallback, ""))
}

func TestGenerate_AfternoonRepeatsWhenNoAlternative(t *testing.T) {
	workers := []models.Worker{early("A", models.QualMiniTrek)}
	tpl := tmpl("Mini Trek")

	r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "A", r.Cell(firstSlot(r, models.PeriodAfternoon), "Mini Trek"))
	require.Len(t, warningsOf(r, WarnRepeatFallback, models.PeriodAfternoon), 1)
}

func TestGenerate_HostAndDekitFromAnyWorker(t *testing.T) {
	workers := []models.Worker{early("U1"), early("U2"), early("U3")}
	tpl := tmpl("Host", "Dekit")

	for i := 0; i < 20; i++ {
		r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate})
		require.NoError(t, err)

		host, dekit := r.Cell(0, "Host"), r.Cell(0, "Dekit")
		assert.NotEmpty(t, host)
		assert.NotEmpty(t, dekit)
		assert.NotEqual(t, host, dekit)
		assert.Empty(t, warningsOf(r, WarnForcedFill, ""))
	}
}

func TestGenerate_ForcedFillFromLateWorkers(t *testing.T) {
	workers := []models.Worker{late("L1"), late("L2")}
	tpl := tmpl("Host", "Dekit")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "L1", r.Cell(0, "Host"))
	assert.Equal(t, "L2", r.Cell(0, "Dekit"))
	assert.Len(t, warningsOf(r, WarnForcedFill, models.PeriodMorning), 2)
}

func TestGenerate_CriticalShortfallStillReturnsRoster(t *testing.T) {
	workers := []models.Worker{early("Solo")}
	tpl := tmpl("Host", "Dekit")

	r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	filled := 0
	for _, role := range []string{"Host", "Dekit"} {
		if r.Cell(0, role) != "" {
			filled++
		}
	}
	assert.Equal(t, 1, filled)
	assert.Len(t, warningsOf(r, WarnShortfall, models.PeriodMorning), 1)
	assert.Empty(t, r.SpareMorning)
}

func TestGenerate_KitUpDrainOrder(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
categories:
  ica: [ICA 1, ICA 2]
  shed: [Host, Dekit, Kit Up 1, Kit Up 2, Kit Up 3, Clip In 1]
priority: [ICA 1, ICA 2]
kitup_primary: [Kit Up 1, Kit Up 2]
kitup_secondary: [Kit Up 3, Clip In 1]
critical: [Host, Dekit]
periods:
  - name: morning
    slots: ["09:00"]
  - name: afternoon
    slots: ["13:00"]
  - name: evening
    slots: ["16:00"]
`))
	require.NoError(t, err)

	workers := []models.Worker{
		early("N1"),
		early("K1", models.QualKitUp),
		early("K2", models.QualKitUp),
		late("K3", models.QualKitUp),
	}
	tpl := tmpl("Kit Up 1", "Kit Up 2", "Clip In 1", "Host")

	r, err := New(cfg, WithPicker(FirstPicker), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).
		Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "K1", r.Cell(0, "Kit Up 1"))
	assert.Equal(t, "K2", r.Cell(0, "Kit Up 2"))
	assert.Equal(t, "K3", r.Cell(0, "Clip In 1"))
	assert.Equal(t, "N1", r.Cell(0, "Host"))
}

func TestGenerate_Evening(t *testing.T) {
	workers := []models.Worker{
		early("E1", models.QualKitUp),
		early("E2", models.QualKitUp),
		early("E3", models.QualICA),
		early("E4", models.QualICA),
		late("L1", models.QualICA),
		late("L2", models.QualICA, models.QualKitUp),
	}
	tpl := tmpl("ICA 1", "ICA 2", "Host", "Kit Up 1")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate, ExtendUntil: 17})
	require.NoError(t, err)

	lastAfternoon := firstSlot(r, models.PeriodEvening) - 1
	require.Equal(t, "L2", r.Cell(lastAfternoon, "Kit Up 1"))
	require.Equal(t, "E1", r.Cell(lastAfternoon, "Host"))

	for i, row := range r.Slots {
		if row.Period != models.PeriodEvening {
			continue
		}
		assert.Equal(t, "L1", r.Cell(i, "ICA 1"), row.Label)
		assert.Equal(t, "L2", r.Cell(i, "ICA 2"), row.Label)
		assert.Empty(t, r.Cell(i, "Kit Up 1"), row.Label)
		if slotHour(row.Label) <= 17 {
			assert.Equal(t, "E1", r.Cell(i, "Host"), row.Label)
		} else {
			assert.Empty(t, r.Cell(i, "Host"), row.Label)
		}
	}
	assert.Len(t, warningsOf(r, WarnEveningConflict, models.PeriodEvening), 1)
}

func TestGenerate_NoEveningCarryWithoutCutoff(t *testing.T) {
	workers := []models.Worker{early("E1", models.QualKitUp)}
	tpl := tmpl("Host")

	r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	for _, row := range r.Slots {
		if row.Period == models.PeriodEvening {
			assert.Empty(t, row.Cells, row.Label)
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	e := quietEngine()
	tpl := tmpl("Host")

	_, err := e.Generate(nil, tpl, models.RunParams{})
	assert.True(t, errors.Is(err, ErrMissingDate))

	_, err = e.Generate(nil, tpl, models.RunParams{Date: "01/06/2024"})
	assert.True(t, errors.Is(err, ErrInvalidDate))

	_, err = e.Generate(nil, models.RoleTemplate{}, models.RunParams{Date: testDate})
	assert.True(t, errors.Is(err, ErrMissingTemplate))

	_, err = e.Generate(nil, tpl, models.RunParams{Date: testDate, ExtendUntil: 19})
	assert.True(t, errors.Is(err, ErrInvalidCutoff))

	_, err = ValidateParams(models.RunParams{Date: testDate, ExtendUntil: 15})
	assert.True(t, errors.Is(err, ErrInvalidCutoff))
}

func TestGenerate_EveningCutoffCounts(t *testing.T) {
	workers := []models.Worker{early("E1", models.QualKitUp)}
	tpl := tmpl("Host")

	for cutoff, want := range map[int]int{0: 0, 16: 2, 17: 4, 18: 6} {
		r, err := quietEngine().Generate(workers, tpl, models.RunParams{Date: testDate, ExtendUntil: cutoff})
		require.NoError(t, err)

		carried := 0
		for i, row := range r.Slots {
			if row.Period == models.PeriodEvening && r.Cell(i, "Host") == "E1" {
				carried++
			}
		}
		assert.Equal(t, want, carried, "extend until %d", cutoff)
	}
}

func TestGenerate_UnpairedSwapRoleHeld(t *testing.T) {
	workers := []models.Worker{
		early("K1", models.QualKitUp),
		early("K2", models.QualKitUp),
		early("N1"),
	}
	tpl := tmpl("Kit Up 1", "Kit Up 2", "Host")

	r, err := quietEngine(WithPicker(FirstPicker)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	for _, period := range []string{models.PeriodMorning, models.PeriodAfternoon} {
		first := firstSlot(r, period)
		holder := r.Cell(first, "Kit Up 2")
		require.NotEmpty(t, holder, period)
		for i, row := range r.Slots {
			if row.Period == period {
				assert.Equal(t, holder, r.Cell(i, "Kit Up 2"), row.Label)
			}
		}
	}
	assert.Equal(t, "K2", r.Cell(0, "Kit Up 2"))
	assert.Empty(t, r.SpareMorning)
}

func TestGenerate_ScriptedPicker(t *testing.T) {
	workers := []models.Worker{
		early("A", models.QualICA),
		early("B", models.QualICA),
		early("C", models.QualICA),
	}
	tpl := tmpl("ICA 1", "ICA 2")

	script := []int{2, 0, 1, 0}
	calls := 0
	pick := func(n int) int {
		i := script[calls%len(script)] % n
		calls++
		return i
	}

	r, err := quietEngine(WithPicker(pick)).Generate(workers, tpl, models.RunParams{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, "C", r.Cell(0, "ICA 1"))
	assert.Equal(t, "A", r.Cell(0, "ICA 2"))
	assert.Equal(t, []string{"B"}, r.SpareMorning)
}
