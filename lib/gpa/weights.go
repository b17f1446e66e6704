package gpa

import (
	"github.com/antzucaro/matchr"

	"powergrades/lib/scrapers/powerschool"
)

// WeightData maps course name to its teacher's category weight table.
// Weights are fractions that sum to 1 per course.
type WeightData map[string]map[string]float64

// SnapCategory resolves a scraped category name against the known weight
// table for a course. Teachers rename categories slightly between years
// ("Test" vs "Tests"), so the lookup falls back to the most similar known
// name instead of failing on an exact-match miss.
func (w WeightData) SnapCategory(course, category string) (string, float64, bool) {
	categories, ok := w[course]
	if !ok {
		return "", 0, false
	}
	if weight, ok := categories[category]; ok {
		return category, weight, true
	}

	mostSimilar := ""
	var similarity float64
	for known := range categories {
		sim := matchr.JaroWinkler(category, known, false)
		if sim > similarity {
			similarity = sim
			mostSimilar = known
		}
	}
	if mostSimilar == "" {
		return "", 0, false
	}
	return mostSimilar, categories[mostSimilar], true
}

// SnapAssignments rewrites each assignment's category to the weight
// table's canonical name for its course. Assignments without a category,
// and courses without a table, pass through unchanged.
func (w WeightData) SnapAssignments(course string, assignments []powerschool.Assignment) []powerschool.Assignment {
	for i, a := range assignments {
		if a.Category == nil {
			continue
		}
		name, _, ok := w.SnapCategory(course, *a.Category)
		if !ok {
			continue
		}
		snapped := name
		assignments[i].Category = &snapped
	}
	return assignments
}
