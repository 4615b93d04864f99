package engine

import "academy_backend/internal/model"

// YearAdvanceMinGPA is the per-year GPA floor for year advancement.
const YearAdvanceMinGPA = 70.0

// GPAEntry is one transcript row as the GPA aggregator sees it: the tier
// and the terminal score for a scope. Collapsing attempts into one entry
// per scope happens upstream.
type GPAEntry struct {
	Tier  model.Tier
	Score float64
}

// ComputeGPA returns the weighted average score across entries, or nil
// when no entry carries weight. Lesson checks weigh zero and therefore
// never influence the result.
func ComputeGPA(entries []GPAEntry) *float64 {
	return weightedAverage(entries, func(t model.Tier) float64 {
		return PolicyFor(t).GPAWeight
	})
}

// ComputeYearGPA is the year-advancement variant: module exams weigh 1.0,
// term exams 2.0, everything else is excluded. Callers pass only the
// entries scoped to the year in question.
func ComputeYearGPA(entries []GPAEntry) *float64 {
	return weightedAverage(entries, func(t model.Tier) float64 {
		switch t {
		case model.TierModuleExam:
			return 1.0
		case model.TierTermExam:
			return 2.0
		}
		return 0
	})
}

func weightedAverage(entries []GPAEntry, weight func(model.Tier) float64) *float64 {
	var sum, total float64
	for _, e := range entries {
		w := weight(e.Tier)
		if w <= 0 {
			continue
		}
		sum += e.Score * w
		total += w
	}
	if total == 0 {
		return nil
	}
	gpa := round2(sum / total)
	return &gpa
}
