package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       UserRole   `gorm:"size:20;default:'student'" json:"role"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Subscription grants access to paid terms. A user may hold several rows
// over time; only a non-canceled row whose window covers now counts.
type Subscription struct {
	BaseModel
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Plan      string    `gorm:"size:50" json:"plan"`
	StartsAt  time.Time `json:"startsAt"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
	Canceled  bool      `gorm:"default:false" json:"canceled"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
