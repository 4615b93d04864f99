package engine

import (
	"testing"
	"time"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attemptAt(ts time.Time) model.Attempt {
	var a model.Attempt
	a.CreatedAt = ts
	return a
}

func TestRetryEligibleWithNoHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	res := RetryEligibility(PolicyFor(model.TierModuleExam), nil, now)

	assert.True(t, res.Eligible)
	assert.Nil(t, res.NextEligibleAt)
}

func TestRetryWindowExhausted(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	oldest := now.Add(-6 * 24 * time.Hour)
	prior := []model.Attempt{
		attemptAt(now.Add(-2 * 24 * time.Hour)),
		attemptAt(oldest),
		attemptAt(now.Add(-4 * 24 * time.Hour)),
	}

	res := RetryEligibility(PolicyFor(model.TierModuleExam), prior, now)

	assert.False(t, res.Eligible)
	require.NotNil(t, res.NextEligibleAt)
	assert.Equal(t, oldest.AddDate(0, 0, 7), *res.NextEligibleAt,
		"window reopens when the oldest recent attempt ages out")
}

func TestRetryCooldownBlocks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-10 * time.Hour)
	prior := []model.Attempt{attemptAt(last)}

	res := RetryEligibility(PolicyFor(model.TierTermExam), prior, now)

	assert.False(t, res.Eligible)
	require.NotNil(t, res.NextEligibleAt)
	assert.Equal(t, last.Add(48*time.Hour), *res.NextEligibleAt)
}

func TestRetryCooldownExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prior := []model.Attempt{attemptAt(now.Add(-49 * time.Hour))}

	res := RetryEligibility(PolicyFor(model.TierTermExam), prior, now)

	assert.True(t, res.Eligible)
	assert.Nil(t, res.NextEligibleAt)
}

func TestRetryCooldownUsesAllHistoryNotJustWindow(t *testing.T) {
	// The only attempt is outside the 7-day window but still inside the
	// cooldown: the window check passes, the cooldown must still block.
	policy := TierPolicy{PassThreshold: 75, MaxAttempts: 3, PeriodDays: 7, CooldownHours: 24 * 8}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-7*24*time.Hour - time.Hour)
	prior := []model.Attempt{attemptAt(last)}

	res := RetryEligibility(policy, prior, now)

	assert.False(t, res.Eligible)
	require.NotNil(t, res.NextEligibleAt)
	assert.Equal(t, last.Add(8*24*time.Hour), *res.NextEligibleAt)
}

func TestRetryLessonCheckHasNoCooldown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prior := []model.Attempt{attemptAt(now.Add(-time.Minute))}

	res := RetryEligibility(PolicyFor(model.TierLessonCheck), prior, now)

	assert.True(t, res.Eligible, "lesson checks retry immediately")
}

func TestRetryLessonCheckDailyCap(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prior := []model.Attempt{
		attemptAt(now.Add(-1 * time.Hour)),
		attemptAt(now.Add(-2 * time.Hour)),
		attemptAt(now.Add(-3 * time.Hour)),
	}

	res := RetryEligibility(PolicyFor(model.TierLessonCheck), prior, now)

	assert.False(t, res.Eligible)
	require.NotNil(t, res.NextEligibleAt)
	assert.Equal(t, now.Add(-3*time.Hour).AddDate(0, 0, 1), *res.NextEligibleAt)
}

func TestRetryOldAttemptsAgeOutOfWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	prior := []model.Attempt{
		attemptAt(now.Add(-20 * 24 * time.Hour)),
		attemptAt(now.Add(-15 * 24 * time.Hour)),
		attemptAt(now.Add(-3 * 24 * time.Hour)),
	}

	res := RetryEligibility(PolicyFor(model.TierModuleExam), prior, now)

	assert.True(t, res.Eligible, "only one attempt falls inside the 7-day window and the cooldown has lapsed")
}
