package service

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptService_Transcript_WeightedGPA(t *testing.T) {
	transcripts := new(MockTranscriptStore)
	svc := NewTranscriptService(transcripts)

	transcripts.On("ListByUser", uint(42)).Return([]model.TranscriptEntry{
		{UserID: 42, AssessmentID: 1, Tier: model.TierModuleExam, YearID: 1, Score: 80},
		{UserID: 42, AssessmentID: 2, Tier: model.TierTermExam, YearID: 1, Score: 90},
	}, nil)

	view, err := svc.Transcript(42)

	require.NoError(t, err)
	require.NotNil(t, view.GPA)
	// (80*1 + 90*2) / 3
	assert.Equal(t, 86.67, *view.GPA)
	assert.Len(t, view.Entries, 2)
}

func TestTranscriptService_Transcript_EmptyHasNoGPA(t *testing.T) {
	transcripts := new(MockTranscriptStore)
	svc := NewTranscriptService(transcripts)

	transcripts.On("ListByUser", uint(42)).Return([]model.TranscriptEntry{}, nil)

	view, err := svc.Transcript(42)

	require.NoError(t, err)
	assert.Nil(t, view.GPA)
	assert.Empty(t, view.Entries)
}

func TestTranscriptService_YearGPA_ExcludesCumulativeReview(t *testing.T) {
	transcripts := new(MockTranscriptStore)
	svc := NewTranscriptService(transcripts)

	transcripts.On("ListByUserAndYear", uint(42), uint(1)).Return([]model.TranscriptEntry{
		{UserID: 42, AssessmentID: 1, Tier: model.TierModuleExam, YearID: 1, Score: 80},
		{UserID: 42, AssessmentID: 2, Tier: model.TierCumulativeReview, YearID: 1, Score: 100},
	}, nil)

	gpa, err := svc.YearGPA(42, 1)

	require.NoError(t, err)
	require.NotNil(t, gpa)
	assert.Equal(t, 80.0, *gpa)
}
