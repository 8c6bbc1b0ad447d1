package scheduler

import (
	"github.com/arnavshah/day-planner-go/pkg/models"
)

// Eligible returns the workers who may take role given the names already
// used in the period. morning is the morning ledger (worker -> roles) and is
// nil during the morning pass. In the afternoon, workers who already held a
// role of the same category in the morning are dropped unless that leaves
// nobody, in which case repeated is true and the unfiltered list is returned.
func Eligible(cfg *Config, pool ShiftPool, role string, used map[string]bool, morning map[string][]string) (candidates []models.Worker, repeated bool) {
	category := cfg.CategoryOf(role)

	var source []Placement
	var tag string
	switch category {
	case CategoryShed:
		source, tag = pool.All(), models.QualKitUp
	case CategoryCourse:
		// late shift workers are kept off the course even though they may hold AATT
		source, tag = pool.Early, models.QualAATT
	case CategoryAerial, CategoryTreeTrek:
		source, tag = pool.All(), models.QualAATT
	case CategoryMiniTrek:
		source, tag = pool.Early, models.QualMiniTrek
	case CategoryICA:
		source, tag = pool.Early, models.QualICA
	default:
		return nil, false
	}

	for _, p := range source {
		if used[p.Worker.Name] || !p.Worker.HasQualification(tag) {
			continue
		}
		candidates = append(candidates, p.Worker)
	}

	if morning == nil || len(candidates) == 0 {
		return candidates, false
	}

	var preferred []models.Worker
	for _, w := range candidates {
		if !heldCategory(cfg, morning[w.Name], category) {
			preferred = append(preferred, w)
		}
	}
	if len(preferred) == 0 {
		return candidates, true
	}
	return preferred, false
}

func heldCategory(cfg *Config, roles []string, category string) bool {
	for _, r := range roles {
		if cfg.CategoryOf(r) == category {
			return true
		}
	}
	return false
}
