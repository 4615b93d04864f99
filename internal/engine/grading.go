package engine

import "academy_backend/internal/model"

// Submission maps question id to the chosen answer id. A missing entry (or
// zero) means the question was left unanswered and counts as incorrect.
type Submission map[uint]uint

type QuestionFeedback struct {
	QuestionID uint `json:"questionId"`
	Correct    bool `json:"correct"`
	// SelectedAnswerID is zero when the question was unanswered.
	SelectedAnswerID uint `json:"selectedAnswerId"`
	CorrectAnswerID  uint `json:"correctAnswerId"`
	// Explanation is set only when the chosen wrong answer carries one.
	Explanation *string `json:"explanation,omitempty"`
	ConceptTag  *string `json:"conceptTag,omitempty"`
}

type GradeResult struct {
	TotalQuestions int                `json:"totalQuestions"`
	CorrectCount   int                `json:"correctCount"`
	Score          float64            `json:"score"`
	Feedback       []QuestionFeedback `json:"feedback"`
}

// Grade scores one submission against one question set. Pure: identical
// inputs always yield identical output.
//
// A question without an entry in correctByQuestion is skipped entirely:
// it counts toward neither total nor correct. One malformed question must
// not block a student's whole attempt.
func Grade(
	questions []model.Question,
	sub Submission,
	correctByQuestion map[uint]model.Answer,
	explanationByAnswer map[uint]string,
) GradeResult {
	res := GradeResult{Feedback: []QuestionFeedback{}}

	for _, q := range questions {
		correct, ok := correctByQuestion[q.ID]
		if !ok {
			continue
		}
		res.TotalQuestions++

		selected := sub[q.ID]
		fb := QuestionFeedback{
			QuestionID:       q.ID,
			SelectedAnswerID: selected,
			CorrectAnswerID:  correct.ID,
			ConceptTag:       q.ConceptTag,
		}

		if selected != 0 && selected == correct.ID {
			fb.Correct = true
			res.CorrectCount++
		} else if selected != 0 {
			if text, ok := explanationByAnswer[selected]; ok && text != "" {
				fb.Explanation = &text
			}
		}

		res.Feedback = append(res.Feedback, fb)
	}

	if res.TotalQuestions > 0 {
		res.Score = round2(float64(res.CorrectCount) / float64(res.TotalQuestions) * 100)
	}
	return res
}
