package repository

import (
	"time"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen_at", now).Error
}

func (r *UserRepository) CreateSubscription(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

// HasActiveSubscription reports whether the user holds a non-canceled
// subscription whose window covers now.
func (r *UserRepository) HasActiveSubscription(userID uint, now time.Time) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Subscription{}).
		Where("user_id = ? AND canceled = ? AND starts_at <= ? AND expires_at > ?", userID, false, now, now).
		Count(&count).Error
	return count > 0, err
}
