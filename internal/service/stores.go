package service

import (
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
)

// Narrow store interfaces over the gorm repositories. Services depend on
// these rather than the concrete types so tests can swap in mocks.

type CurriculumStore interface {
	FindYearByID(id uint) (*model.Year, error)
	FindTermByID(id uint) (*model.Term, error)
	FindModuleByID(id uint) (*model.Module, error)
	FindLessonByID(id uint) (*model.Lesson, error)
	ListYears() ([]model.Year, error)
	ListTermsByYear(yearID uint) ([]model.Term, error)
	ListModulesByTerm(termID uint) ([]model.Module, error)
	ListLessonsByModule(moduleID uint) ([]model.Lesson, error)
	ListTermsInSequence() ([]model.Term, error)
	ListLessonsInSequence() ([]model.Lesson, error)
}

type AssessmentStore interface {
	FindByID(id uint) (*model.Assessment, error)
	FindByLessonID(lessonID uint) (*model.Assessment, error)
	FindByModuleID(moduleID uint) (*model.Assessment, error)
	FindByTermID(termID uint) (*model.Assessment, error)
	FindCumulativeByYearID(yearID uint) (*model.Assessment, error)
}

type QuestionStore interface {
	ListByAssessment(assessmentID uint) ([]model.Question, error)
	ListAnswersByQuestionIDs(questionIDs []uint) ([]model.Answer, error)
}

type AttemptStore interface {
	ListByUserAndAssessment(userID, assessmentID uint) ([]model.Attempt, error)
	HasPassed(userID, assessmentID uint) (bool, error)
	RecordSubmission(rec repository.SubmissionRecord) error
}

type WeakAreaStore interface {
	ListByUser(userID uint) ([]model.WeakArea, error)
	ListAtOrAbove(userID uint, threshold int) ([]model.WeakArea, error)
	Increment(userID uint, tally map[string]int, now time.Time) error
}

type ProgressStore interface {
	IsCompleted(userID, lessonID uint) (bool, error)
	CompletedCount(userID uint, lessonIDs []uint) (int64, error)
	MarkCompleted(userID, lessonID uint) error
	ListByUser(userID uint) ([]model.LessonProgress, error)
}

type SubscriptionStore interface {
	HasActiveSubscription(userID uint, now time.Time) (bool, error)
}

type TranscriptStore interface {
	ListByUser(userID uint) ([]model.TranscriptEntry, error)
	ListByUserAndYear(userID, yearID uint) ([]model.TranscriptEntry, error)
}
