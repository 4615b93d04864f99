package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type TranscriptRepository struct {
	DB *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{DB: db}
}

func (r *TranscriptRepository) ListByUser(userID uint) ([]model.TranscriptEntry, error) {
	var entries []model.TranscriptEntry
	err := r.DB.Where("user_id = ?", userID).Order("year_id, assessment_id").Find(&entries).Error
	return entries, err
}

func (r *TranscriptRepository) ListByUserAndYear(userID, yearID uint) ([]model.TranscriptEntry, error) {
	var entries []model.TranscriptEntry
	err := r.DB.Where("user_id = ? AND year_id = ?", userID, yearID).Find(&entries).Error
	return entries, err
}
