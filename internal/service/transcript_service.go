package service

import (
	"academy_backend/internal/engine"
	"academy_backend/internal/model"
)

// TranscriptView pairs the terminal per-scope entries with the overall
// weighted GPA. GPA is nil until a weighted entry exists.
type TranscriptView struct {
	Entries []model.TranscriptEntry `json:"entries"`
	GPA     *float64                `json:"gpa"`
}

type TranscriptService struct {
	transcripts TranscriptStore
}

func NewTranscriptService(transcripts TranscriptStore) *TranscriptService {
	return &TranscriptService{transcripts: transcripts}
}

func (s *TranscriptService) Transcript(userID uint) (*TranscriptView, error) {
	entries, err := s.transcripts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &TranscriptView{Entries: entries, GPA: engine.ComputeGPA(toGPAEntries(entries))}, nil
}

// YearGPA is the advancement variant: module and term exams only, scoped
// to one year.
func (s *TranscriptService) YearGPA(userID, yearID uint) (*float64, error) {
	entries, err := s.transcripts.ListByUserAndYear(userID, yearID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeYearGPA(toGPAEntries(entries)), nil
}

func toGPAEntries(entries []model.TranscriptEntry) []engine.GPAEntry {
	out := make([]engine.GPAEntry, len(entries))
	for i, e := range entries {
		out[i] = engine.GPAEntry{Tier: e.Tier, Score: e.Score}
	}
	return out
}
