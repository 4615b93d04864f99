package service

import (
	"testing"
	"time"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProgression() (*ProgressionService, *MockCurriculumStore, *MockAssessmentStore, *MockAttemptStore, *MockWeakAreaStore, *MockProgressStore, *MockSubscriptionStore, *MockTranscriptStore) {
	curriculum := new(MockCurriculumStore)
	assessments := new(MockAssessmentStore)
	attempts := new(MockAttemptStore)
	weakAreas := new(MockWeakAreaStore)
	progress := new(MockProgressStore)
	subscriptions := new(MockSubscriptionStore)
	transcripts := new(MockTranscriptStore)

	svc := NewProgressionService(curriculum, assessments, attempts, weakAreas, progress, subscriptions, transcripts)
	return svc, curriculum, assessments, attempts, weakAreas, progress, subscriptions, transcripts
}

func lessonRow(id, moduleID uint, position int, title string) model.Lesson {
	return model.Lesson{BaseModel: model.BaseModel{ID: id}, ModuleID: moduleID, Position: position, Title: title}
}

func TestProgressionService_CanAccessLesson_FirstLessonAlwaysAccessible(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{
		lessonRow(1, 10, 1, "Openings"),
		lessonRow(2, 10, 2, "Development"),
	}, nil)

	dec, err := svc.CanAccessLesson(42, 1)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
	assert.Empty(t, dec.Reason)
	curriculum.AssertExpectations(t)
}

func TestProgressionService_CanAccessLesson_UnknownLesson(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{lessonRow(1, 10, 1, "Openings")}, nil)

	dec, err := svc.CanAccessLesson(42, 999)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Equal(t, "lesson not found", dec.Reason)
}

func TestProgressionService_CanAccessLesson_BlockedUntilPreviousQuizPassed(t *testing.T) {
	svc, curriculum, assessments, attempts, _, _, _, _ := newTestProgression()

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{
		lessonRow(1, 10, 1, "Openings"),
		lessonRow(2, 10, 2, "Development"),
	}, nil)
	curriculum.On("FindModuleByID", uint(10)).Return(&model.Module{BaseModel: model.BaseModel{ID: 10}, TermID: 20}, nil)
	curriculum.On("FindTermByID", uint(20)).Return(&model.Term{BaseModel: model.BaseModel{ID: 20}, Free: true}, nil)
	assessments.On("FindByLessonID", uint(1)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 100}, Tier: model.TierLessonCheck}, nil)
	attempts.On("HasPassed", uint(42), uint(100)).Return(false, nil)

	dec, err := svc.CanAccessLesson(42, 2)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "Openings")
	attempts.AssertExpectations(t)
}

func TestProgressionService_CanAccessLesson_PreviousLessonWithoutQuiz(t *testing.T) {
	svc, curriculum, assessments, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{
		lessonRow(1, 10, 1, "Openings"),
		lessonRow(2, 10, 2, "Development"),
	}, nil)
	curriculum.On("FindModuleByID", uint(10)).Return(&model.Module{BaseModel: model.BaseModel{ID: 10}, TermID: 20}, nil)
	curriculum.On("FindTermByID", uint(20)).Return(&model.Term{BaseModel: model.BaseModel{ID: 20}, Free: true}, nil)
	assessments.On("FindByLessonID", uint(1)).Return(nil, nil)

	dec, err := svc.CanAccessLesson(42, 2)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_CanAccessLesson_PaidTermRequiresSubscription(t *testing.T) {
	svc, curriculum, _, _, _, _, subscriptions, _ := newTestProgression()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{
		lessonRow(1, 10, 1, "Openings"),
		lessonRow(2, 11, 1, "Tactics"),
	}, nil)
	curriculum.On("FindModuleByID", uint(11)).Return(&model.Module{BaseModel: model.BaseModel{ID: 11}, TermID: 21}, nil)
	curriculum.On("FindTermByID", uint(21)).Return(&model.Term{BaseModel: model.BaseModel{ID: 21}, Free: false}, nil)
	subscriptions.On("HasActiveSubscription", uint(42), now).Return(false, nil)

	dec, err := svc.CanAccessLesson(42, 2)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "subscription")
	subscriptions.AssertExpectations(t)
}

func TestProgressionService_CanAccessTerm_FirstTermAccessible(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListTermsInSequence").Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Fundamentals"},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Tactics"},
	}, nil)

	dec, err := svc.CanAccessTerm(42, 1)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_CanAccessTerm_WeakAreasBlockAdvancement(t *testing.T) {
	// A passed prerequisite exam does not help while a concept sits at the
	// review threshold; the denial names the concept.
	svc, curriculum, assessments, attempts, weakAreas, _, _, _ := newTestProgression()

	curriculum.On("ListTermsInSequence").Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Fundamentals"},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Tactics"},
	}, nil)
	assessments.On("FindByTermID", uint(1)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 200}, Tier: model.TierTermExam}, nil)
	attempts.On("HasPassed", uint(42), uint(200)).Return(true, nil)
	weakAreas.On("ListAtOrAbove", uint(42), 3).Return([]model.WeakArea{
		{UserID: 42, ConceptTag: "centers", ErrorCount: 3},
	}, nil)

	dec, err := svc.CanAccessTerm(42, 2)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "centers")
	weakAreas.AssertExpectations(t)
}

func TestProgressionService_CanAccessTerm_CleanLedgerAllows(t *testing.T) {
	svc, curriculum, assessments, attempts, weakAreas, _, _, _ := newTestProgression()

	curriculum.On("ListTermsInSequence").Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Fundamentals"},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Tactics"},
	}, nil)
	assessments.On("FindByTermID", uint(1)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 200}, Tier: model.TierTermExam}, nil)
	attempts.On("HasPassed", uint(42), uint(200)).Return(true, nil)
	weakAreas.On("ListAtOrAbove", uint(42), 3).Return([]model.WeakArea{}, nil)

	dec, err := svc.CanAccessTerm(42, 2)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_CanAccessModule_FirstModuleInheritsTerm(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("FindModuleByID", uint(30)).Return(&model.Module{BaseModel: model.BaseModel{ID: 30}, TermID: 1}, nil)
	curriculum.On("ListModulesByTerm", uint(1)).Return([]model.Module{
		{BaseModel: model.BaseModel{ID: 30}, TermID: 1},
	}, nil)
	curriculum.On("ListTermsInSequence").Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Fundamentals"},
	}, nil)

	dec, err := svc.CanAccessModule(42, 30)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_CanAccessModule_RequiresPreviousModuleLessonsComplete(t *testing.T) {
	svc, curriculum, _, _, _, progress, _, _ := newTestProgression()

	curriculum.On("FindModuleByID", uint(32)).Return(&model.Module{BaseModel: model.BaseModel{ID: 32}, TermID: 1}, nil)
	curriculum.On("ListModulesByTerm", uint(1)).Return([]model.Module{
		{BaseModel: model.BaseModel{ID: 31}, TermID: 1, Title: "Pins and Forks"},
		{BaseModel: model.BaseModel{ID: 32}, TermID: 1, Title: "Skewers"},
	}, nil)
	curriculum.On("ListLessonsByModule", uint(31)).Return([]model.Lesson{
		lessonRow(1, 31, 1, "Pins"),
		lessonRow(2, 31, 2, "Forks"),
	}, nil)
	progress.On("CompletedCount", uint(42), []uint{1, 2}).Return(int64(1), nil)

	dec, err := svc.CanAccessModule(42, 32)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "Pins and Forks")
}

func TestProgressionService_CanAccessModule_RequiresPreviousModuleExamPassed(t *testing.T) {
	svc, curriculum, assessments, attempts, _, progress, _, _ := newTestProgression()

	curriculum.On("FindModuleByID", uint(32)).Return(&model.Module{BaseModel: model.BaseModel{ID: 32}, TermID: 1}, nil)
	curriculum.On("ListModulesByTerm", uint(1)).Return([]model.Module{
		{BaseModel: model.BaseModel{ID: 31}, TermID: 1, Title: "Pins and Forks"},
		{BaseModel: model.BaseModel{ID: 32}, TermID: 1, Title: "Skewers"},
	}, nil)
	curriculum.On("ListLessonsByModule", uint(31)).Return([]model.Lesson{
		lessonRow(1, 31, 1, "Pins"),
		lessonRow(2, 31, 2, "Forks"),
	}, nil)
	progress.On("CompletedCount", uint(42), []uint{1, 2}).Return(int64(2), nil)
	assessments.On("FindByModuleID", uint(31)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 300}, Tier: model.TierModuleExam}, nil)
	attempts.On("HasPassed", uint(42), uint(300)).Return(false, nil)

	dec, err := svc.CanAccessModule(42, 32)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "exam")
}

func TestProgressionService_CanAccessYear_GPABelowMinimum(t *testing.T) {
	// Every exam requirement met, but the year GPA of 68 misses the 70
	// floor.
	svc, curriculum, assessments, attempts, _, _, _, transcripts := newTestProgression()

	curriculum.On("ListYears").Return([]model.Year{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Year One", Position: 1},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Year Two", Position: 2},
	}, nil)
	curriculum.On("ListTermsByYear", uint(1)).Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 10}, YearID: 1, Title: "Fundamentals"},
	}, nil)
	assessments.On("FindByTermID", uint(10)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 200}, Tier: model.TierTermExam}, nil)
	attempts.On("HasPassed", uint(42), uint(200)).Return(true, nil)
	assessments.On("FindCumulativeByYearID", uint(1)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 400}, Tier: model.TierCumulativeReview}, nil)
	attempts.On("HasPassed", uint(42), uint(400)).Return(true, nil)
	transcripts.On("ListByUserAndYear", uint(42), uint(1)).Return([]model.TranscriptEntry{
		{UserID: 42, AssessmentID: 200, Tier: model.TierTermExam, YearID: 1, Score: 68},
	}, nil)

	dec, err := svc.CanAccessYear(42, 2)

	require.NoError(t, err)
	assert.False(t, dec.Accessible)
	assert.Contains(t, dec.Reason, "68.00")
	assert.Contains(t, dec.Reason, "70")
}

func TestProgressionService_CanAccessYear_AllRequirementsMet(t *testing.T) {
	svc, curriculum, assessments, attempts, _, _, _, transcripts := newTestProgression()

	curriculum.On("ListYears").Return([]model.Year{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Year One", Position: 1},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Year Two", Position: 2},
	}, nil)
	curriculum.On("ListTermsByYear", uint(1)).Return([]model.Term{
		{BaseModel: model.BaseModel{ID: 10}, YearID: 1, Title: "Fundamentals"},
	}, nil)
	assessments.On("FindByTermID", uint(10)).Return(&model.Assessment{BaseModel: model.BaseModel{ID: 200}, Tier: model.TierTermExam}, nil)
	attempts.On("HasPassed", uint(42), uint(200)).Return(true, nil)
	assessments.On("FindCumulativeByYearID", uint(1)).Return(nil, nil)
	transcripts.On("ListByUserAndYear", uint(42), uint(1)).Return([]model.TranscriptEntry{
		{UserID: 42, AssessmentID: 200, Tier: model.TierTermExam, YearID: 1, Score: 82},
		{UserID: 42, AssessmentID: 201, Tier: model.TierModuleExam, YearID: 1, Score: 75},
	}, nil)

	dec, err := svc.CanAccessYear(42, 2)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_CanAccessYear_FirstYearAccessible(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListYears").Return([]model.Year{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Year One", Position: 1},
	}, nil)

	dec, err := svc.CanAccessYear(42, 1)

	require.NoError(t, err)
	assert.True(t, dec.Accessible)
}

func TestProgressionService_PreviousInSequence(t *testing.T) {
	svc, curriculum, _, _, _, _, _, _ := newTestProgression()

	curriculum.On("ListLessonsInSequence").Return([]model.Lesson{
		lessonRow(1, 10, 1, "Openings"),
		lessonRow(2, 10, 2, "Development"),
		lessonRow(3, 11, 1, "Tactics"),
	}, nil)

	prev, err := svc.PreviousInSequence(3)
	require.NoError(t, err)
	require.NotNil(t, prev)
	// Crosses the module boundary: the order is curriculum-wide.
	assert.Equal(t, uint(2), prev.ID)

	first, err := svc.PreviousInSequence(1)
	require.NoError(t, err)
	assert.Nil(t, first)
}
