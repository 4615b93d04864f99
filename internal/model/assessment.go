package model

// Tier identifies the assessment kind. Each tier carries its own pass
// threshold and retry policy (see engine.PolicyFor).
type Tier string

const (
	TierLessonCheck      Tier = "lesson_check"
	TierModuleExam       Tier = "module_exam"
	TierTermExam         Tier = "term_exam"
	TierCumulativeReview Tier = "cumulative_review"
)

func (t Tier) Valid() bool {
	switch t {
	case TierLessonCheck, TierModuleExam, TierTermExam, TierCumulativeReview:
		return true
	}
	return false
}

// Assessment is the tier configuration row. Exactly one scope reference is
// set: LessonID for lesson_check, ModuleID for module_exam, TermID for
// term_exam, YearID for cumulative_review. Policy columns left at zero fall
// back to the tier defaults.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title         string  `gorm:"size:255;not null" json:"title"`
	Tier          Tier    `gorm:"size:32;not null;index" json:"tier"`
	LessonID      *uint   `gorm:"uniqueIndex" json:"lessonId,omitempty"`
	ModuleID      *uint   `gorm:"uniqueIndex" json:"moduleId,omitempty"`
	TermID        *uint   `gorm:"uniqueIndex" json:"termId,omitempty"`
	YearID        *uint   `gorm:"uniqueIndex" json:"yearId,omitempty"`
	PassThreshold float64 `gorm:"default:0" json:"passThreshold"`
	MaxAttempts   int     `gorm:"default:0" json:"maxAttempts"`
	PeriodDays    int     `gorm:"default:0" json:"periodDays"`
	CooldownHours int     `gorm:"default:0" json:"cooldownHours"`
}

func (Assessment) TableName() string {
	return "assessments"
}
