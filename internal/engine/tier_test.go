package engine

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPolicyForDefaults(t *testing.T) {
	cases := []struct {
		tier   model.Tier
		policy TierPolicy
	}{
		{model.TierLessonCheck, TierPolicy{80, 3, 1, 0, 0}},
		{model.TierModuleExam, TierPolicy{75, 3, 7, 24, 1.0}},
		{model.TierTermExam, TierPolicy{70, 2, 14, 48, 2.0}},
		{model.TierCumulativeReview, TierPolicy{70, 3, 7, 24, 0.5}},
	}
	for _, c := range cases {
		assert.Equal(t, c.policy, PolicyFor(c.tier), "tier %s", c.tier)
	}
}

func TestPolicyForAssessmentOverrides(t *testing.T) {
	a := &model.Assessment{Tier: model.TierModuleExam, PassThreshold: 85, CooldownHours: 12}

	p := PolicyForAssessment(a)

	assert.Equal(t, 85.0, p.PassThreshold)
	assert.Equal(t, 12, p.CooldownHours)
	assert.Equal(t, 3, p.MaxAttempts, "unset columns keep tier defaults")
	assert.Equal(t, 7, p.PeriodDays)
}

func TestTierValid(t *testing.T) {
	assert.True(t, model.TierLessonCheck.Valid())
	assert.True(t, model.TierCumulativeReview.Valid())
	assert.False(t, model.Tier("pop_quiz").Valid())
}
