package engine

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNextActionLessonCheck(t *testing.T) {
	assert.Equal(t, ActionRetry, NextAction(model.TierLessonCheck, 1, nil).Action)
	assert.Equal(t, ActionRevisitLesson, NextAction(model.TierLessonCheck, 2, nil).Action)
	assert.Equal(t, ActionReviewRequired, NextAction(model.TierLessonCheck, 3, nil).Action)
	assert.Equal(t, ActionReviewRequired, NextAction(model.TierLessonCheck, 7, nil).Action)
}

func TestNextActionModuleExam(t *testing.T) {
	first := NextAction(model.TierModuleExam, 1, nil)
	assert.Equal(t, ActionRetry, first.Action)
	assert.Contains(t, first.Message, "24 hour")

	assert.Equal(t, ActionRetry, NextAction(model.TierModuleExam, 2, nil).Action)

	third := NextAction(model.TierModuleExam, 3, []string{"pointers", "recursion"})
	assert.Equal(t, ActionModuleReview, third.Action)
	assert.Contains(t, third.Message, "pointers")
	assert.Contains(t, third.Message, "recursion")
}

func TestNextActionTermExam(t *testing.T) {
	first := NextAction(model.TierTermExam, 1, nil)
	assert.Equal(t, ActionRetry, first.Action)
	assert.Contains(t, first.Message, "48 hour")

	assert.Equal(t, ActionTermReview, NextAction(model.TierTermExam, 2, nil).Action)
}

func TestNextActionCumulativeReviewAlwaysModuleReview(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		advice := NextAction(model.TierCumulativeReview, n, []string{"centers"})
		assert.Equal(t, ActionModuleReview, advice.Action)
		assert.Contains(t, advice.Message, "centers")
	}
}
