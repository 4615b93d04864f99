package service

import (
	"time"

	"academy_backend/internal/engine"
	"academy_backend/internal/model"
)

// RequiredReview is one ledger row that has crossed the review threshold.
// Blocking marks rows that additionally pin the student to the current
// term.
type RequiredReview struct {
	ConceptTag string `json:"conceptTag"`
	ErrorCount int    `json:"errorCount"`
	Blocking   bool   `json:"blocking"`
}

type WeakAreaService struct {
	weakAreas WeakAreaStore
	now       func() time.Time
}

func NewWeakAreaService(weakAreas WeakAreaStore) *WeakAreaService {
	return &WeakAreaService{weakAreas: weakAreas, now: time.Now}
}

// List returns the user's full ledger, worst concepts first.
func (s *WeakAreaService) List(userID uint) ([]model.WeakArea, error) {
	return s.weakAreas.ListByUser(userID)
}

// RequiredReviews returns the concepts at or above the review threshold,
// flagging those at or above the blocking threshold.
func (s *WeakAreaService) RequiredReviews(userID uint) ([]RequiredReview, error) {
	areas, err := s.weakAreas.ListAtOrAbove(userID, engine.ReviewThreshold)
	if err != nil {
		return nil, err
	}
	reviews := make([]RequiredReview, len(areas))
	for i, a := range areas {
		reviews[i] = RequiredReview{
			ConceptTag: a.ConceptTag,
			ErrorCount: a.ErrorCount,
			Blocking:   a.ErrorCount >= engine.BlockingThreshold,
		}
	}
	return reviews, nil
}

// UpdateLedger applies one graded attempt's misses. A concept missed twice
// in the same attempt increments by 2.
func (s *WeakAreaService) UpdateLedger(userID uint, misses []engine.ConceptMiss) error {
	tally := engine.TallyConceptMisses(misses)
	if len(tally) == 0 {
		return nil
	}
	return s.weakAreas.Increment(userID, tally, s.now())
}
