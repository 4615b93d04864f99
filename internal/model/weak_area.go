package model

import "time"

// WeakArea is the per-(user, concept) miss counter. ErrorCount only ever
// grows; there is no mastery-decay mechanic.
// swagger:model WeakArea
type WeakArea struct {
	BaseModel
	UserID       uint      `gorm:"not null;uniqueIndex:idx_weak_area_user_concept" json:"userId"`
	ConceptTag   string    `gorm:"size:100;not null;uniqueIndex:idx_weak_area_user_concept" json:"conceptTag"`
	ErrorCount   int       `gorm:"not null;default:0" json:"errorCount"`
	LastTestedAt time.Time `json:"lastTestedAt"`
}

func (WeakArea) TableName() string {
	return "weak_areas"
}
