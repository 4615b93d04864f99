package database

import (
	"fmt"
	"log"

	"academy_backend/internal/config"
	"academy_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Subscription{},
		&model.Year{},
		&model.Term{},
		&model.Module{},
		&model.Lesson{},
		&model.Assessment{},
		&model.Question{},
		&model.Answer{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.WeakArea{},
		&model.TranscriptEntry{},
		&model.LessonProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed a minimal curriculum skeleton on an empty database so the
	// first lesson is reachable out of the box.
	var yearCount int64
	db.Model(&model.Year{}).Count(&yearCount)
	if yearCount == 0 {
		year := &model.Year{Title: "Year One", Position: 1}
		if err := db.Create(year).Error; err == nil {
			term := &model.Term{YearID: year.ID, Title: "Fundamentals", Position: 1, Free: true}
			if err := db.Create(term).Error; err == nil {
				module := &model.Module{TermID: term.ID, Title: "Getting Started", Position: 1}
				db.Create(module)
			}
		}
	}

	return db, nil
}
