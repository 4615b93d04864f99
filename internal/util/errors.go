package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrInvalidTier        = errors.New("invalid assessment tier")
	ErrInvalidScope       = errors.New("assessment must reference exactly one scope")
	ErrPositionTaken      = errors.New("position already used within this scope")
	ErrNoCorrectAnswer    = errors.New("question must have exactly one correct answer")
	ErrNoAnswers          = errors.New("question must have at least two answers")
	ErrLessonHasQuiz      = errors.New("lesson completion requires passing its quiz")
)
