package engine

import (
	"academy_backend/internal/model"
	"math"
)

// TierPolicy bundles everything a tier decides: pass threshold, the
// rolling attempt window, the cooldown between attempts, and the weight
// the tier carries in the GPA.
type TierPolicy struct {
	PassThreshold float64
	MaxAttempts   int
	PeriodDays    int
	CooldownHours int
	GPAWeight     float64
}

// PolicyFor resolves the built-in policy for a tier. The switch is kept
// exhaustive over model.Tier so adding a tier is a compile-visible change;
// an unknown tier yields the zero policy and should be rejected at the
// authoring boundary via Tier.Valid.
func PolicyFor(tier model.Tier) TierPolicy {
	switch tier {
	case model.TierLessonCheck:
		return TierPolicy{PassThreshold: 80, MaxAttempts: 3, PeriodDays: 1, CooldownHours: 0, GPAWeight: 0}
	case model.TierModuleExam:
		return TierPolicy{PassThreshold: 75, MaxAttempts: 3, PeriodDays: 7, CooldownHours: 24, GPAWeight: 1.0}
	case model.TierTermExam:
		return TierPolicy{PassThreshold: 70, MaxAttempts: 2, PeriodDays: 14, CooldownHours: 48, GPAWeight: 2.0}
	case model.TierCumulativeReview:
		return TierPolicy{PassThreshold: 70, MaxAttempts: 3, PeriodDays: 7, CooldownHours: 24, GPAWeight: 0.5}
	}
	return TierPolicy{}
}

// PolicyForAssessment starts from the tier defaults and applies any
// per-assessment overrides (zero columns mean "use the default").
func PolicyForAssessment(a *model.Assessment) TierPolicy {
	p := PolicyFor(a.Tier)
	if a.PassThreshold > 0 {
		p.PassThreshold = a.PassThreshold
	}
	if a.MaxAttempts > 0 {
		p.MaxAttempts = a.MaxAttempts
	}
	if a.PeriodDays > 0 {
		p.PeriodDays = a.PeriodDays
	}
	if a.CooldownHours > 0 {
		p.CooldownHours = a.CooldownHours
	}
	return p
}

// LetterGrade maps a 0-100 score onto the fixed letter partition.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
