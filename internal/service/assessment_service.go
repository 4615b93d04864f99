package service

import (
	"errors"
	"strconv"
	"time"

	"academy_backend/internal/engine"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// AnswerView is an answer choice as students see it: no correctness flag,
// no explanation.
type AnswerView struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type QuestionView struct {
	ID       uint               `json:"id"`
	Text     string             `json:"text"`
	Type     model.QuestionType `json:"type"`
	Position int                `json:"position"`
	Answers  []AnswerView       `json:"answers"`
}

// AssessmentResult is the full outcome of one submission. Accepted=false
// means the retry gate rejected the submission before grading; everything
// past Eligibility is zero in that case.
type AssessmentResult struct {
	Accepted       bool                      `json:"accepted"`
	Eligibility    engine.Eligibility        `json:"eligibility"`
	AttemptNumber  int                       `json:"attemptNumber,omitempty"`
	Score          float64                   `json:"score"`
	Grade          string                    `json:"grade,omitempty"`
	Passed         bool                      `json:"passed"`
	TotalQuestions int                       `json:"totalQuestions"`
	CorrectCount   int                       `json:"correctCount"`
	Feedback       []engine.QuestionFeedback `json:"feedback,omitempty"`
	WeakConcepts   []string                  `json:"weakConcepts,omitempty"`
	Advice         *engine.RetryAdvice       `json:"advice,omitempty"`
}

type AssessmentService struct {
	assessments AssessmentStore
	questions   QuestionStore
	attempts    AttemptStore
	curriculum  CurriculumStore
	now         func() time.Time
}

func NewAssessmentService(
	assessments AssessmentStore,
	questions QuestionStore,
	attempts AttemptStore,
	curriculum CurriculumStore,
) *AssessmentService {
	return &AssessmentService{
		assessments: assessments,
		questions:   questions,
		attempts:    attempts,
		curriculum:  curriculum,
		now:         time.Now,
	}
}

// RetryEligibility applies the tier's rolling-window and cooldown policy
// to the user's full attempt history for the assessment.
func (s *AssessmentService) RetryEligibility(userID, assessmentID uint) (engine.Eligibility, error) {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return engine.Eligibility{}, err
	}
	prior, err := s.attempts.ListByUserAndAssessment(userID, assessmentID)
	if err != nil {
		return engine.Eligibility{}, err
	}
	return engine.RetryEligibility(engine.PolicyForAssessment(assessment), prior, s.now()), nil
}

// Questions returns the student view of the assessment's question set:
// correctness flags and explanations stripped.
func (s *AssessmentService) Questions(assessmentID uint) ([]QuestionView, error) {
	if _, err := s.findAssessment(assessmentID); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	answers, err := s.questions.ListAnswersByQuestionIDs(ids)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[uint][]AnswerView, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], AnswerView{
			ID:       a.ID,
			Text:     a.Text,
			Position: a.Position,
		})
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:       q.ID,
			Text:     q.Text,
			Type:     q.Type,
			Position: q.Position,
			Answers:  byQuestion[q.ID],
		}
	}
	return views, nil
}

// Submit grades one submission and applies every write of the flow in a
// single transaction: attempt row (with per-question answers), lesson
// progress on a passing lesson check, transcript upsert on a passing
// higher tier, weak-area ledger increments. An ineligible submission comes
// back as a structured rejection, not an error.
func (s *AssessmentService) Submit(userID, assessmentID uint, sub engine.Submission) (*AssessmentResult, error) {
	assessment, err := s.findAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	policy := engine.PolicyForAssessment(assessment)

	prior, err := s.attempts.ListByUserAndAssessment(userID, assessmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eligibility := engine.RetryEligibility(policy, prior, now)
	if !eligibility.Eligible {
		return &AssessmentResult{Accepted: false, Eligibility: eligibility}, nil
	}

	questions, correctByQuestion, explanationByAnswer, err := s.loadBank(assessmentID)
	if err != nil {
		return nil, err
	}

	res := engine.Grade(questions, sub, correctByQuestion, explanationByAnswer)
	passed := res.TotalQuestions > 0 && res.Score >= policy.PassThreshold
	number := len(prior) + 1

	attempt := &model.Attempt{
		UserID:       userID,
		AssessmentID: assessmentID,
		Number:       number,
		Score:        res.Score,
		Grade:        engine.LetterGrade(res.Score),
		Passed:       passed,
	}

	answerRows := make([]model.AttemptAnswer, len(res.Feedback))
	for i, fb := range res.Feedback {
		answerRows[i] = model.AttemptAnswer{
			QuestionID: fb.QuestionID,
			AnswerID:   fb.SelectedAnswerID,
			Correct:    fb.Correct,
		}
	}

	tally := engine.TallyConceptMisses(engine.CollectConceptMisses(res))

	rec := repository.SubmissionRecord{
		Attempt:   attempt,
		Answers:   answerRows,
		MissTally: tally,
		Now:       now,
	}

	if passed {
		if assessment.Tier == model.TierLessonCheck && assessment.LessonID != nil {
			rec.CompletedLessonID = assessment.LessonID
		}
		if assessment.Tier != model.TierLessonCheck {
			yearID, err := s.yearIDForAssessment(assessment)
			if err != nil {
				return nil, err
			}
			rec.Transcript = &model.TranscriptEntry{
				UserID:       userID,
				AssessmentID: assessmentID,
				Tier:         assessment.Tier,
				YearID:       yearID,
				Score:        res.Score,
			}
		}
	}

	if err := s.attempts.RecordSubmission(rec); err != nil {
		return nil, err
	}
	monitoring.AttemptCounter.WithLabelValues(string(assessment.Tier), strconv.FormatBool(passed)).Inc()

	weakConcepts := engine.SortedConcepts(tally)
	result := &AssessmentResult{
		Accepted:       true,
		Eligibility:    eligibility,
		AttemptNumber:  number,
		Score:          res.Score,
		Grade:          attempt.Grade,
		Passed:         passed,
		TotalQuestions: res.TotalQuestions,
		CorrectCount:   res.CorrectCount,
		Feedback:       res.Feedback,
		WeakConcepts:   weakConcepts,
	}
	if !passed {
		advice := engine.NextAction(assessment.Tier, number, weakConcepts)
		result.Advice = &advice
	}
	return result, nil
}

func (s *AssessmentService) findAssessment(id uint) (*model.Assessment, error) {
	assessment, err := s.assessments.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) loadBank(assessmentID uint) ([]model.Question, map[uint]model.Answer, map[uint]string, error) {
	questions, err := s.questions.ListByAssessment(assessmentID)
	if err != nil {
		return nil, nil, nil, err
	}
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	answers, err := s.questions.ListAnswersByQuestionIDs(ids)
	if err != nil {
		return nil, nil, nil, err
	}

	correctByQuestion := make(map[uint]model.Answer)
	explanationByAnswer := make(map[uint]string)
	for _, a := range answers {
		if a.IsCorrect {
			correctByQuestion[a.QuestionID] = a
		}
		if a.Explanation != "" {
			explanationByAnswer[a.ID] = a.Explanation
		}
	}
	return questions, correctByQuestion, explanationByAnswer, nil
}

// yearIDForAssessment resolves the year an assessment's scope lives under,
// for the transcript's year reference.
func (s *AssessmentService) yearIDForAssessment(a *model.Assessment) (uint, error) {
	switch {
	case a.YearID != nil:
		return *a.YearID, nil
	case a.TermID != nil:
		term, err := s.curriculum.FindTermByID(*a.TermID)
		if err != nil {
			return 0, err
		}
		return term.YearID, nil
	case a.ModuleID != nil:
		module, err := s.curriculum.FindModuleByID(*a.ModuleID)
		if err != nil {
			return 0, err
		}
		term, err := s.curriculum.FindTermByID(module.TermID)
		if err != nil {
			return 0, err
		}
		return term.YearID, nil
	}
	return 0, util.ErrInvalidScope
}
