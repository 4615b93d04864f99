package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"academy_backend/internal/engine"
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

// AccessDecision is the answer of every progression gate. A denial is a
// value with a human-readable reason, never an error; lookup misses also
// land here ("lesson not found") instead of crashing the request.
type AccessDecision struct {
	Accessible bool   `json:"accessible"`
	Reason     string `json:"reason,omitempty"`
}

func allowed() AccessDecision             { return AccessDecision{Accessible: true} }
func denied(reason string) AccessDecision { return AccessDecision{Accessible: false, Reason: reason} }

// ProgressionService evaluates the access predicates over the curriculum
// hierarchy. Every decision is recomputed from current persisted state on
// each call; gating results are never cached.
type ProgressionService struct {
	curriculum    CurriculumStore
	assessments   AssessmentStore
	attempts      AttemptStore
	weakAreas     WeakAreaStore
	progress      ProgressStore
	subscriptions SubscriptionStore
	transcripts   TranscriptStore
	now           func() time.Time
}

func NewProgressionService(
	curriculum CurriculumStore,
	assessments AssessmentStore,
	attempts AttemptStore,
	weakAreas WeakAreaStore,
	progress ProgressStore,
	subscriptions SubscriptionStore,
	transcripts TranscriptStore,
) *ProgressionService {
	return &ProgressionService{
		curriculum:    curriculum,
		assessments:   assessments,
		attempts:      attempts,
		weakAreas:     weakAreas,
		progress:      progress,
		subscriptions: subscriptions,
		transcripts:   transcripts,
		now:           time.Now,
	}
}

// PreviousInSequence resolves the lesson immediately before the given one
// in the explicit curriculum-wide order (year, term, module, lesson
// positions). Returns nil for the very first lesson.
func (s *ProgressionService) PreviousInSequence(lessonID uint) (*model.Lesson, error) {
	seq, err := s.curriculum.ListLessonsInSequence()
	if err != nil {
		return nil, err
	}
	for i := range seq {
		if seq[i].ID == lessonID {
			if i == 0 {
				return nil, nil
			}
			prev := seq[i-1]
			return &prev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// CanAccessLesson: the first lesson of the whole curriculum is always
// accessible. Lessons in paid terms require an active subscription. Beyond
// that, the immediately preceding lesson must either have no quiz or have
// at least one passing attempt.
func (s *ProgressionService) CanAccessLesson(userID, lessonID uint) (AccessDecision, error) {
	seq, err := s.curriculum.ListLessonsInSequence()
	if err != nil {
		return AccessDecision{}, err
	}

	idx := -1
	for i := range seq {
		if seq[i].ID == lessonID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return denied("lesson not found"), nil
	}
	if idx == 0 {
		return allowed(), nil
	}

	dec, err := s.checkSubscriptionForLesson(userID, &seq[idx])
	if err != nil || !dec.Accessible {
		return dec, err
	}

	prev := seq[idx-1]
	quiz, err := s.assessments.FindByLessonID(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if quiz == nil {
		return allowed(), nil
	}

	passed, err := s.attempts.HasPassed(userID, quiz.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if !passed {
		return denied(fmt.Sprintf("pass the quiz for %q first", prev.Title)), nil
	}
	return allowed(), nil
}

func (s *ProgressionService) checkSubscriptionForLesson(userID uint, lesson *model.Lesson) (AccessDecision, error) {
	module, err := s.curriculum.FindModuleByID(lesson.ModuleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return denied("module not found"), nil
	}
	if err != nil {
		return AccessDecision{}, err
	}
	term, err := s.curriculum.FindTermByID(module.TermID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return denied("term not found"), nil
	}
	if err != nil {
		return AccessDecision{}, err
	}
	if term.Free {
		return allowed(), nil
	}

	active, err := s.subscriptions.HasActiveSubscription(userID, s.now())
	if err != nil {
		return AccessDecision{}, err
	}
	if !active {
		return denied("this lesson requires an active subscription"), nil
	}
	return allowed(), nil
}

// CanAccessModule: the first module of its term inherits the term's
// accessibility. A later module requires every lesson of the preceding
// module completed and, if the preceding module has an exam, a passing
// attempt for it.
func (s *ProgressionService) CanAccessModule(userID, moduleID uint) (AccessDecision, error) {
	module, err := s.curriculum.FindModuleByID(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return denied("module not found"), nil
	}
	if err != nil {
		return AccessDecision{}, err
	}

	siblings, err := s.curriculum.ListModulesByTerm(module.TermID)
	if err != nil {
		return AccessDecision{}, err
	}
	idx := -1
	for i := range siblings {
		if siblings[i].ID == moduleID {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return s.CanAccessTerm(userID, module.TermID)
	}

	prev := siblings[idx-1]
	lessons, err := s.curriculum.ListLessonsByModule(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if len(lessons) > 0 {
		ids := make([]uint, len(lessons))
		for i, l := range lessons {
			ids[i] = l.ID
		}
		done, err := s.progress.CompletedCount(userID, ids)
		if err != nil {
			return AccessDecision{}, err
		}
		if done < int64(len(ids)) {
			return denied(fmt.Sprintf("complete all lessons in %q first", prev.Title)), nil
		}
	}

	exam, err := s.assessments.FindByModuleID(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if exam != nil {
		passed, err := s.attempts.HasPassed(userID, exam.ID)
		if err != nil {
			return AccessDecision{}, err
		}
		if !passed {
			return denied(fmt.Sprintf("pass the %q exam first", prev.Title)), nil
		}
	}
	return allowed(), nil
}

// CanAccessTerm: the first term of the curriculum is always accessible. A
// later term requires the preceding term's exam passed (when one exists)
// and a clean weak-area ledger: any concept at or above the review
// threshold blocks advancement and is named in the reason.
func (s *ProgressionService) CanAccessTerm(userID, termID uint) (AccessDecision, error) {
	seq, err := s.curriculum.ListTermsInSequence()
	if err != nil {
		return AccessDecision{}, err
	}
	idx := -1
	for i := range seq {
		if seq[i].ID == termID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return denied("term not found"), nil
	}
	if idx == 0 {
		return allowed(), nil
	}

	prev := seq[idx-1]
	exam, err := s.assessments.FindByTermID(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if exam != nil {
		passed, err := s.attempts.HasPassed(userID, exam.ID)
		if err != nil {
			return AccessDecision{}, err
		}
		if !passed {
			return denied(fmt.Sprintf("pass the %q exam first", prev.Title)), nil
		}
	}

	areas, err := s.weakAreas.ListAtOrAbove(userID, engine.ReviewThreshold)
	if err != nil {
		return AccessDecision{}, err
	}
	if len(areas) > 0 {
		tags := make([]string, len(areas))
		for i, a := range areas {
			tags[i] = a.ConceptTag
		}
		return denied(fmt.Sprintf("required concept reviews outstanding: %s", strings.Join(tags, ", "))), nil
	}
	return allowed(), nil
}

// CanAccessYear: year one is always accessible. A later year requires, for
// the preceding year: every term exam passed, the cumulative review passed
// when one is defined, and a year GPA of at least the advancement minimum.
func (s *ProgressionService) CanAccessYear(userID, yearID uint) (AccessDecision, error) {
	years, err := s.curriculum.ListYears()
	if err != nil {
		return AccessDecision{}, err
	}
	idx := -1
	for i := range years {
		if years[i].ID == yearID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return denied("year not found"), nil
	}
	if idx == 0 {
		return allowed(), nil
	}

	prev := years[idx-1]
	terms, err := s.curriculum.ListTermsByYear(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	for _, term := range terms {
		exam, err := s.assessments.FindByTermID(term.ID)
		if err != nil {
			return AccessDecision{}, err
		}
		if exam == nil {
			continue
		}
		passed, err := s.attempts.HasPassed(userID, exam.ID)
		if err != nil {
			return AccessDecision{}, err
		}
		if !passed {
			return denied(fmt.Sprintf("pass the %q exam first", term.Title)), nil
		}
	}

	review, err := s.assessments.FindCumulativeByYearID(prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	if review != nil {
		passed, err := s.attempts.HasPassed(userID, review.ID)
		if err != nil {
			return AccessDecision{}, err
		}
		if !passed {
			return denied(fmt.Sprintf("pass the cumulative review for %q first", prev.Title)), nil
		}
	}

	entries, err := s.transcripts.ListByUserAndYear(userID, prev.ID)
	if err != nil {
		return AccessDecision{}, err
	}
	gpaEntries := make([]engine.GPAEntry, len(entries))
	for i, e := range entries {
		gpaEntries[i] = engine.GPAEntry{Tier: e.Tier, Score: e.Score}
	}
	// A nil GPA means no weighted entries exist for the year; with every
	// exam requirement already satisfied there is nothing left to fail on.
	if gpa := engine.ComputeYearGPA(gpaEntries); gpa != nil && *gpa < engine.YearAdvanceMinGPA {
		return denied(fmt.Sprintf("GPA for %q is %.2f, below the %.0f minimum", prev.Title, *gpa, engine.YearAdvanceMinGPA)), nil
	}
	return allowed(), nil
}
