package engine

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGPAEmpty(t *testing.T) {
	assert.Nil(t, ComputeGPA(nil))
	assert.Nil(t, ComputeGPA([]GPAEntry{}))
}

func TestComputeGPASingleModuleExam(t *testing.T) {
	gpa := ComputeGPA([]GPAEntry{{Tier: model.TierModuleExam, Score: 80}})
	require.NotNil(t, gpa)
	assert.Equal(t, 80.0, *gpa)
}

func TestComputeGPAWeighted(t *testing.T) {
	gpa := ComputeGPA([]GPAEntry{
		{Tier: model.TierModuleExam, Score: 80},
		{Tier: model.TierTermExam, Score: 90},
	})
	require.NotNil(t, gpa)
	// (80*1 + 90*2) / 3
	assert.Equal(t, 86.67, *gpa)
}

func TestComputeGPAIgnoresLessonChecks(t *testing.T) {
	gpa := ComputeGPA([]GPAEntry{
		{Tier: model.TierLessonCheck, Score: 100},
		{Tier: model.TierModuleExam, Score: 75},
	})
	require.NotNil(t, gpa)
	assert.Equal(t, 75.0, *gpa)

	assert.Nil(t, ComputeGPA([]GPAEntry{{Tier: model.TierLessonCheck, Score: 100}}),
		"lesson checks alone carry no weight")
}

func TestComputeGPACumulativeReviewWeight(t *testing.T) {
	gpa := ComputeGPA([]GPAEntry{
		{Tier: model.TierModuleExam, Score: 80},
		{Tier: model.TierCumulativeReview, Score: 60},
	})
	require.NotNil(t, gpa)
	// (80*1 + 60*0.5) / 1.5
	assert.Equal(t, 73.33, *gpa)
}

func TestComputeYearGPAExcludesCumulativeReview(t *testing.T) {
	gpa := ComputeYearGPA([]GPAEntry{
		{Tier: model.TierModuleExam, Score: 80},
		{Tier: model.TierTermExam, Score: 90},
		{Tier: model.TierCumulativeReview, Score: 10},
		{Tier: model.TierLessonCheck, Score: 10},
	})
	require.NotNil(t, gpa)
	assert.Equal(t, 86.67, *gpa)
}

func TestComputeYearGPANoQualifyingEntries(t *testing.T) {
	assert.Nil(t, ComputeYearGPA([]GPAEntry{{Tier: model.TierCumulativeReview, Score: 95}}))
}
