package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateWithAnswers persists a question and its answers in one
// transaction. Content validation (exactly one correct answer, unique
// positions) happens in the service before this is called.
func (r *QuestionRepository) CreateWithAnswers(q *model.Question, answers []model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].QuestionID = q.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *QuestionRepository) ListByAssessment(assessmentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("position").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListAnswersByQuestionIDs(questionIDs []uint) ([]model.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var answers []model.Answer
	err := r.DB.Where("question_id IN ?", questionIDs).Order("question_id, position").Find(&answers).Error
	return answers, err
}
