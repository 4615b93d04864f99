package model

// Curriculum hierarchy: years contain terms, terms contain modules,
// modules contain lessons. Position is the sort key within the parent
// scope; uniqueness per parent is enforced at the authoring boundary.

// swagger:model Year
type Year struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"not null;uniqueIndex:idx_year_position" json:"position"`
}

func (Year) TableName() string {
	return "years"
}

// swagger:model Term
type Term struct {
	BaseModel
	YearID   uint   `gorm:"index;not null;uniqueIndex:idx_term_position" json:"yearId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"not null;uniqueIndex:idx_term_position" json:"position"`
	// Free terms are browsable without a subscription.
	Free bool `gorm:"default:false" json:"free"`
}

func (Term) TableName() string {
	return "terms"
}

// swagger:model Module
type Module struct {
	BaseModel
	TermID      uint   `gorm:"index;not null;uniqueIndex:idx_module_position" json:"termId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Position    int    `gorm:"not null;uniqueIndex:idx_module_position" json:"position"`
}

func (Module) TableName() string {
	return "modules"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID     uint   `gorm:"index;not null;uniqueIndex:idx_lesson_position" json:"moduleId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Content      string `gorm:"type:text" json:"content"`
	VideoURL     string `gorm:"size:512" json:"videoUrl,omitempty"`
	ThumbnailURL string `gorm:"size:512" json:"thumbnailUrl,omitempty"`
	// Probed from the uploaded video; zero until a video exists.
	VideoDuration float64 `json:"videoDuration,omitempty"`
	Position     int    `gorm:"not null;uniqueIndex:idx_lesson_position" json:"position"`
}

func (Lesson) TableName() string {
	return "lessons"
}
