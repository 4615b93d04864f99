package repository

import (
	"time"

	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) ListByUserAndAssessment(userID, assessmentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("number").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByUserAndAssessment(userID, assessmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) HasPassed(userID, assessmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).
		Where("user_id = ? AND assessment_id = ? AND passed = ?", userID, assessmentID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) GetAnswers(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

// SubmissionRecord is everything one graded submission writes. The pieces
// are applied in a single transaction in the fixed order: attempt →
// lesson progress → transcript → weak-area ledger.
type SubmissionRecord struct {
	Attempt *model.Attempt
	Answers []model.AttemptAnswer
	// CompletedLessonID marks the lesson done (passed lesson checks only).
	CompletedLessonID *uint
	// Transcript upserts the terminal per-scope entry (passed higher tiers).
	Transcript *model.TranscriptEntry
	// MissTally is the per-concept increment for the weak-area ledger.
	MissTally map[string]int
	Now       time.Time
}

func (r *AttemptRepository) RecordSubmission(rec SubmissionRecord) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec.Attempt).Error; err != nil {
			return err
		}

		if len(rec.Answers) > 0 {
			for i := range rec.Answers {
				rec.Answers[i].AttemptID = rec.Attempt.ID
			}
			if err := tx.Create(&rec.Answers).Error; err != nil {
				return err
			}
		}

		if rec.CompletedLessonID != nil {
			if err := markLessonCompleted(tx, rec.Attempt.UserID, *rec.CompletedLessonID, rec.Attempt.Score, rec.Now); err != nil {
				return err
			}
		}

		if rec.Transcript != nil {
			if err := upsertTranscriptEntry(tx, rec.Transcript); err != nil {
				return err
			}
		}

		for tag, inc := range rec.MissTally {
			if err := incrementWeakArea(tx, rec.Attempt.UserID, tag, inc, rec.Now); err != nil {
				return err
			}
		}

		return nil
	})
}

func markLessonCompleted(tx *gorm.DB, userID, lessonID uint, score float64, now time.Time) error {
	var progress model.LessonProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if progress.ID == 0 {
		progress = model.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   true,
			BestScore:   score,
			CompletedAt: &now,
		}
		return tx.Create(&progress).Error
	}
	progress.Completed = true
	if score > progress.BestScore {
		progress.BestScore = score
	}
	if progress.CompletedAt == nil {
		progress.CompletedAt = &now
	}
	return tx.Save(&progress).Error
}

func upsertTranscriptEntry(tx *gorm.DB, entry *model.TranscriptEntry) error {
	var existing model.TranscriptEntry
	err := tx.Where("user_id = ? AND assessment_id = ?", entry.UserID, entry.AssessmentID).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing.ID == 0 {
		return tx.Create(entry).Error
	}
	// The transcript keeps the best passing score for the scope.
	if entry.Score > existing.Score {
		existing.Score = entry.Score
		return tx.Save(&existing).Error
	}
	return nil
}

func incrementWeakArea(tx *gorm.DB, userID uint, tag string, amount int, now time.Time) error {
	var area model.WeakArea
	err := tx.Where("user_id = ? AND concept_tag = ?", userID, tag).First(&area).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if area.ID == 0 {
		area = model.WeakArea{
			UserID:       userID,
			ConceptTag:   tag,
			ErrorCount:   amount,
			LastTestedAt: now,
		}
		return tx.Create(&area).Error
	}
	return tx.Model(&area).UpdateColumns(map[string]interface{}{
		"error_count":    gorm.Expr("error_count + ?", amount),
		"last_tested_at": now,
	}).Error
}
