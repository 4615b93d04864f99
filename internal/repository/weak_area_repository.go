package repository

import (
	"time"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type WeakAreaRepository struct {
	DB *gorm.DB
}

func NewWeakAreaRepository(db *gorm.DB) *WeakAreaRepository {
	return &WeakAreaRepository{DB: db}
}

func (r *WeakAreaRepository) ListByUser(userID uint) ([]model.WeakArea, error) {
	var areas []model.WeakArea
	err := r.DB.Where("user_id = ?", userID).
		Order("error_count DESC, concept_tag").Find(&areas).Error
	return areas, err
}

func (r *WeakAreaRepository) ListAtOrAbove(userID uint, threshold int) ([]model.WeakArea, error) {
	var areas []model.WeakArea
	err := r.DB.Where("user_id = ? AND error_count >= ?", userID, threshold).
		Order("error_count DESC, concept_tag").Find(&areas).Error
	return areas, err
}

// Increment applies one attempt's per-concept tally. Counts only grow.
func (r *WeakAreaRepository) Increment(userID uint, tally map[string]int, now time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for tag, amount := range tally {
			if err := incrementWeakArea(tx, userID, tag, amount, now); err != nil {
				return err
			}
		}
		return nil
	})
}
