package repository

import (
	"errors"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Scope lookups return (nil, nil) when the scope simply has no assessment;
// the progression gates treat that as "nothing to pass".

func (r *AssessmentRepository) FindByLessonID(lessonID uint) (*model.Assessment, error) {
	return r.findByScope("lesson_id = ? AND tier = ?", lessonID, model.TierLessonCheck)
}

func (r *AssessmentRepository) FindByModuleID(moduleID uint) (*model.Assessment, error) {
	return r.findByScope("module_id = ? AND tier = ?", moduleID, model.TierModuleExam)
}

func (r *AssessmentRepository) FindByTermID(termID uint) (*model.Assessment, error) {
	return r.findByScope("term_id = ? AND tier = ?", termID, model.TierTermExam)
}

func (r *AssessmentRepository) FindCumulativeByYearID(yearID uint) (*model.Assessment, error) {
	return r.findByScope("year_id = ? AND tier = ?", yearID, model.TierCumulativeReview)
}

func (r *AssessmentRepository) findByScope(query string, args ...interface{}) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where(query, args...).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
