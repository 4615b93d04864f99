package model

import "time"

// LessonProgress marks a lesson as completed for a user. Lessons with a
// quiz complete through a passing lesson-check attempt; lessons without one
// complete through an explicit mark-complete call.
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_progress_user_lesson" json:"userId"`
	LessonID    uint       `gorm:"not null;uniqueIndex:idx_progress_user_lesson" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	BestScore   float64    `gorm:"type:decimal(5,2);default:0" json:"bestScore"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
