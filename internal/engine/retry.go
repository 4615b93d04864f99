package engine

import (
	"sort"
	"time"

	"academy_backend/internal/model"
)

// Eligibility is the hard retry gate's answer. NextEligibleAt is set only
// when Eligible is false and a concrete boundary exists.
type Eligibility struct {
	Eligible       bool       `json:"eligible"`
	NextEligibleAt *time.Time `json:"nextEligibleAt,omitempty"`
}

// RetryEligibility decides whether another attempt is allowed right now.
// The rolling attempt-count window is checked first; the cooldown applies
// against the most recent attempt across *all* history, not just the
// window. Prior attempts may arrive in any order.
func RetryEligibility(policy TierPolicy, prior []model.Attempt, now time.Time) Eligibility {
	stamps := make([]time.Time, len(prior))
	for i, a := range prior {
		stamps[i] = a.CreatedAt
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	periodStart := now.AddDate(0, 0, -policy.PeriodDays)
	var recent []time.Time
	for _, ts := range stamps {
		if !ts.Before(periodStart) {
			recent = append(recent, ts)
		}
	}

	if policy.MaxAttempts > 0 && len(recent) >= policy.MaxAttempts {
		next := recent[0].AddDate(0, 0, policy.PeriodDays)
		return Eligibility{Eligible: false, NextEligibleAt: &next}
	}

	if policy.CooldownHours > 0 && len(stamps) > 0 {
		boundary := stamps[len(stamps)-1].Add(time.Duration(policy.CooldownHours) * time.Hour)
		if now.Before(boundary) {
			return Eligibility{Eligible: false, NextEligibleAt: &boundary}
		}
	}

	return Eligibility{Eligible: true}
}
