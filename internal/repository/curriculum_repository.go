package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type CurriculumRepository struct {
	DB *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{DB: db}
}

func (r *CurriculumRepository) CreateYear(y *model.Year) error     { return r.DB.Create(y).Error }
func (r *CurriculumRepository) CreateTerm(t *model.Term) error     { return r.DB.Create(t).Error }
func (r *CurriculumRepository) CreateModule(m *model.Module) error { return r.DB.Create(m).Error }
func (r *CurriculumRepository) CreateLesson(l *model.Lesson) error { return r.DB.Create(l).Error }

func (r *CurriculumRepository) UpdateLesson(l *model.Lesson) error { return r.DB.Save(l).Error }

func (r *CurriculumRepository) FindYearByID(id uint) (*model.Year, error) {
	var y model.Year
	if err := r.DB.First(&y, id).Error; err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *CurriculumRepository) FindTermByID(id uint) (*model.Term, error) {
	var t model.Term
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CurriculumRepository) FindModuleByID(id uint) (*model.Module, error) {
	var m model.Module
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CurriculumRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	if err := r.DB.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CurriculumRepository) ListYears() ([]model.Year, error) {
	var years []model.Year
	err := r.DB.Order("position").Find(&years).Error
	return years, err
}

func (r *CurriculumRepository) ListTermsByYear(yearID uint) ([]model.Term, error) {
	var terms []model.Term
	err := r.DB.Where("year_id = ?", yearID).Order("position").Find(&terms).Error
	return terms, err
}

// ListTermsInSequence returns every term in curriculum order
// (year position, then term position).
func (r *CurriculumRepository) ListTermsInSequence() ([]model.Term, error) {
	var terms []model.Term
	err := r.DB.
		Joins("JOIN years ON years.id = terms.year_id AND years.deleted_at IS NULL").
		Order("years.position, terms.position").
		Find(&terms).Error
	return terms, err
}

func (r *CurriculumRepository) ListModulesByTerm(termID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("term_id = ?", termID).Order("position").Find(&modules).Error
	return modules, err
}

func (r *CurriculumRepository) ListLessonsByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("position").Find(&lessons).Error
	return lessons, err
}

// ListLessonsInSequence materializes the explicit curriculum-wide lesson
// order: (year position, term position, module position, lesson position).
// Progression gates derive "previous lesson" from this, never from chained
// per-table lookups.
func (r *CurriculumRepository) ListLessonsInSequence() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Joins("JOIN modules ON modules.id = lessons.module_id AND modules.deleted_at IS NULL").
		Joins("JOIN terms ON terms.id = modules.term_id AND terms.deleted_at IS NULL").
		Joins("JOIN years ON years.id = terms.year_id AND years.deleted_at IS NULL").
		Order("years.position, terms.position, modules.position, lessons.position").
		Find(&lessons).Error
	return lessons, err
}

func (r *CurriculumRepository) YearPositionTaken(position int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Year{}).Where("position = ?", position).Count(&count).Error
	return count > 0, err
}

// PositionTaken reports whether a position is already used within the
// parent scope; the authoring boundary rejects duplicates before insert.
func (r *CurriculumRepository) PositionTaken(entity interface{}, parentColumn string, parentID uint, position int) (bool, error) {
	var count int64
	err := r.DB.Model(entity).
		Where(parentColumn+" = ? AND position = ?", parentID, position).
		Count(&count).Error
	return count > 0, err
}
