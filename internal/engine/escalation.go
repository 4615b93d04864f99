package engine

import (
	"fmt"
	"strings"

	"academy_backend/internal/model"
)

// RetryAction is the advisory next step after a failed attempt. It is
// chosen from the attempt number alone and layered on top of the hard
// retry gate; callers must consult both.
type RetryAction string

const (
	ActionRetry          RetryAction = "retry"
	ActionRevisitLesson  RetryAction = "revisit_lesson"
	ActionReviewRequired RetryAction = "review_required"
	ActionModuleReview   RetryAction = "module_review"
	ActionTermReview     RetryAction = "term_review"
)

type RetryAdvice struct {
	Action  RetryAction `json:"action"`
	Message string      `json:"message"`
}

// NextAction maps (tier, failed attempt number) onto the escalation table.
// weakConcepts, when present, are named in review messages.
func NextAction(tier model.Tier, attemptNumber int, weakConcepts []string) RetryAdvice {
	switch tier {
	case model.TierLessonCheck:
		switch {
		case attemptNumber <= 1:
			return RetryAdvice{ActionRetry, "You can retry this lesson check right away."}
		case attemptNumber == 2:
			return RetryAdvice{ActionRevisitLesson, "Revisit the lesson material before trying again."}
		default:
			return RetryAdvice{ActionReviewRequired, "A review of this lesson's prerequisites is required before another attempt."}
		}
	case model.TierModuleExam:
		if attemptNumber <= 2 {
			return RetryAdvice{ActionRetry, "You can retry this module exam after the 24 hour cooldown."}
		}
		return RetryAdvice{ActionModuleReview, reviewMessage("module", weakConcepts)}
	case model.TierTermExam:
		if attemptNumber <= 1 {
			return RetryAdvice{ActionRetry, "You can retry this term exam after the 48 hour cooldown."}
		}
		return RetryAdvice{ActionTermReview, reviewMessage("term", weakConcepts)}
	case model.TierCumulativeReview:
		return RetryAdvice{ActionModuleReview, reviewMessage("module", weakConcepts)}
	}
	return RetryAdvice{ActionRetry, "You can retry this assessment."}
}

func reviewMessage(scope string, weakConcepts []string) string {
	if len(weakConcepts) == 0 {
		return fmt.Sprintf("Review the %s material before another attempt.", scope)
	}
	return fmt.Sprintf("Review the %s material, focusing on: %s.", scope, strings.Join(weakConcepts, ", "))
}
