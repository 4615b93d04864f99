package model

// Attempt is the immutable record of one graded submission. A retry
// produces a new row; Number is prior-count + 1 per (user, assessment).
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID       uint    `gorm:"not null;index:idx_attempt_user_assessment" json:"userId"`
	AssessmentID uint    `gorm:"not null;index:idx_attempt_user_assessment" json:"assessmentId"`
	Number       int     `gorm:"not null" json:"number"`
	Score        float64 `gorm:"type:decimal(5,2);not null" json:"score"`
	Grade        string  `gorm:"size:2;not null" json:"grade"`
	Passed       bool    `gorm:"default:false;index" json:"passed"`
}

func (Attempt) TableName() string {
	return "attempts"
}

type AttemptAnswer struct {
	BaseModel
	AttemptID  uint `gorm:"index;not null" json:"attemptId"`
	QuestionID uint `gorm:"not null" json:"questionId"`
	// AnswerID is zero when the question was left unanswered.
	AnswerID uint `gorm:"not null" json:"answerId"`
	Correct  bool `gorm:"default:false" json:"correct"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
