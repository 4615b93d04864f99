package model

type QuestionType string

const (
	QuestionConceptual QuestionType = "conceptual"
	QuestionTrap       QuestionType = "trap"
	QuestionContrast   QuestionType = "contrast"
	QuestionDefinition QuestionType = "definition"
)

// Question belongs to one assessment. Immutable once created; edits go
// through the authoring flow which replaces the question set.
// swagger:model Question
type Question struct {
	BaseModel
	AssessmentID uint         `gorm:"index;not null;uniqueIndex:idx_question_position" json:"assessmentId"`
	Text         string       `gorm:"type:text;not null" json:"text"`
	Type         QuestionType `gorm:"size:20;not null" json:"type"`
	// ConceptTag groups questions for weak-area tracking; nil means the
	// question does not feed the ledger.
	ConceptTag *string `gorm:"size:100;index" json:"conceptTag,omitempty"`
	Position   int     `gorm:"not null;uniqueIndex:idx_question_position" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}

// Answer is one choice of a single-correct-answer multiple-choice question.
// Exactly one answer per question carries IsCorrect; the authoring boundary
// enforces it, the engine assumes it.
// swagger:model Answer
type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	// Explanation is surfaced only when this wrong answer was chosen.
	Explanation string `gorm:"type:text" json:"-"`
	Position    int    `gorm:"not null" json:"position"`
}

func (Answer) TableName() string {
	return "answers"
}
