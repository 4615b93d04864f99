package repository

import (
	"time"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) IsCompleted(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).
		Count(&count).Error
	return count > 0, err
}

// CompletedCount counts how many of the given lessons the user completed.
func (r *ProgressRepository) CompletedCount(userID uint, lessonIDs []uint) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Count(&count).Error
	return count, err
}

// MarkCompleted records completion for a lesson without a quiz.
func (r *ProgressRepository) MarkCompleted(userID, lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return markLessonCompleted(tx, userID, lessonID, 0, time.Now())
	})
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
