package service

import (
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Mocks for the store interfaces, shared by the service tests.

type MockCurriculumStore struct {
	mock.Mock
}

func (m *MockCurriculumStore) FindYearByID(id uint) (*model.Year, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Year), args.Error(1)
}

func (m *MockCurriculumStore) FindTermByID(id uint) (*model.Term, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Term), args.Error(1)
}

func (m *MockCurriculumStore) FindModuleByID(id uint) (*model.Module, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Module), args.Error(1)
}

func (m *MockCurriculumStore) FindLessonByID(id uint) (*model.Lesson, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lesson), args.Error(1)
}

func (m *MockCurriculumStore) ListYears() ([]model.Year, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Year), args.Error(1)
}

func (m *MockCurriculumStore) ListTermsByYear(yearID uint) ([]model.Term, error) {
	args := m.Called(yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Term), args.Error(1)
}

func (m *MockCurriculumStore) ListModulesByTerm(termID uint) ([]model.Module, error) {
	args := m.Called(termID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Module), args.Error(1)
}

func (m *MockCurriculumStore) ListLessonsByModule(moduleID uint) ([]model.Lesson, error) {
	args := m.Called(moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lesson), args.Error(1)
}

func (m *MockCurriculumStore) ListTermsInSequence() ([]model.Term, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Term), args.Error(1)
}

func (m *MockCurriculumStore) ListLessonsInSequence() ([]model.Lesson, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lesson), args.Error(1)
}

type MockAssessmentStore struct {
	mock.Mock
}

func (m *MockAssessmentStore) FindByID(id uint) (*model.Assessment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentStore) FindByLessonID(lessonID uint) (*model.Assessment, error) {
	args := m.Called(lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentStore) FindByModuleID(moduleID uint) (*model.Assessment, error) {
	args := m.Called(moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentStore) FindByTermID(termID uint) (*model.Assessment, error) {
	args := m.Called(termID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentStore) FindCumulativeByYearID(yearID uint) (*model.Assessment, error) {
	args := m.Called(yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) ListByAssessment(assessmentID uint) ([]model.Question, error) {
	args := m.Called(assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuestionStore) ListAnswersByQuestionIDs(questionIDs []uint) ([]model.Answer, error) {
	args := m.Called(questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

type MockAttemptStore struct {
	mock.Mock
}

func (m *MockAttemptStore) ListByUserAndAssessment(userID, assessmentID uint) ([]model.Attempt, error) {
	args := m.Called(userID, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attempt), args.Error(1)
}

func (m *MockAttemptStore) HasPassed(userID, assessmentID uint) (bool, error) {
	args := m.Called(userID, assessmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptStore) RecordSubmission(rec repository.SubmissionRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

type MockWeakAreaStore struct {
	mock.Mock
}

func (m *MockWeakAreaStore) ListByUser(userID uint) ([]model.WeakArea, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeakArea), args.Error(1)
}

func (m *MockWeakAreaStore) ListAtOrAbove(userID uint, threshold int) ([]model.WeakArea, error) {
	args := m.Called(userID, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeakArea), args.Error(1)
}

func (m *MockWeakAreaStore) Increment(userID uint, tally map[string]int, now time.Time) error {
	args := m.Called(userID, tally, now)
	return args.Error(0)
}

type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) IsCompleted(userID, lessonID uint) (bool, error) {
	args := m.Called(userID, lessonID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgressStore) CompletedCount(userID uint, lessonIDs []uint) (int64, error) {
	args := m.Called(userID, lessonIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressStore) MarkCompleted(userID, lessonID uint) error {
	args := m.Called(userID, lessonID)
	return args.Error(0)
}

func (m *MockProgressStore) ListByUser(userID uint) ([]model.LessonProgress, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LessonProgress), args.Error(1)
}

type MockSubscriptionStore struct {
	mock.Mock
}

func (m *MockSubscriptionStore) HasActiveSubscription(userID uint, now time.Time) (bool, error) {
	args := m.Called(userID, now)
	return args.Bool(0), args.Error(1)
}

type MockTranscriptStore struct {
	mock.Mock
}

func (m *MockTranscriptStore) ListByUser(userID uint) ([]model.TranscriptEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranscriptEntry), args.Error(1)
}

func (m *MockTranscriptStore) ListByUserAndYear(userID, yearID uint) ([]model.TranscriptEntry, error) {
	args := m.Called(userID, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TranscriptEntry), args.Error(1)
}
