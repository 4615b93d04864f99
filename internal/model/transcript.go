package model

// TranscriptEntry is the terminal, GPA-eligible record for one assessment
// scope: the attempt history collapsed to a single passing score. Only
// higher tiers are written; lesson checks never reach the transcript.
// swagger:model TranscriptEntry
type TranscriptEntry struct {
	BaseModel
	UserID       uint    `gorm:"not null;uniqueIndex:idx_transcript_user_assessment" json:"userId"`
	AssessmentID uint    `gorm:"not null;uniqueIndex:idx_transcript_user_assessment" json:"assessmentId"`
	Tier         Tier    `gorm:"size:32;not null" json:"tier"`
	YearID       uint    `gorm:"index;not null" json:"yearId"`
	Score        float64 `gorm:"type:decimal(5,2);not null" json:"score"`
}

func (TranscriptEntry) TableName() string {
	return "transcript_entries"
}
