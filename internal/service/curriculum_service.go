package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The static outline (titles, positions, which scopes carry assessments)
// is cacheable; lock state never is, access predicates are recomputed
// per user per request.
const (
	outlineCacheKey = "curriculum:outline"
	outlineCacheTTL = 10 * time.Minute
)

type OutlineLesson struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Position     int    `json:"position"`
	HasQuiz      bool   `json:"hasQuiz"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Completed    bool   `json:"completed"`
	Accessible   bool   `json:"accessible"`
	Reason       string `json:"reason,omitempty"`
}

type OutlineModule struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Position   int             `json:"position"`
	HasExam    bool            `json:"hasExam"`
	Accessible bool            `json:"accessible"`
	Reason     string          `json:"reason,omitempty"`
	Lessons    []OutlineLesson `json:"lessons"`
}

type OutlineTerm struct {
	ID         uint            `json:"id"`
	Title      string          `json:"title"`
	Position   int             `json:"position"`
	Free       bool            `json:"free"`
	HasExam    bool            `json:"hasExam"`
	Accessible bool            `json:"accessible"`
	Reason     string          `json:"reason,omitempty"`
	Modules    []OutlineModule `json:"modules"`
}

type OutlineYear struct {
	ID                  uint          `json:"id"`
	Title               string        `json:"title"`
	Position            int           `json:"position"`
	HasCumulativeReview bool          `json:"hasCumulativeReview"`
	Accessible          bool          `json:"accessible"`
	Reason              string        `json:"reason,omitempty"`
	Terms               []OutlineTerm `json:"terms"`
}

type CurriculumService struct {
	Curriculum  *repository.CurriculumRepository
	Questions   *repository.QuestionRepository
	Assessments *repository.AssessmentRepository
	Progress    ProgressStore
	Progression *ProgressionService
	Storage     *StorageService
	Redis       *redis.Client
}

func NewCurriculumService(
	curriculum *repository.CurriculumRepository,
	questions *repository.QuestionRepository,
	assessments *repository.AssessmentRepository,
	progress ProgressStore,
	progression *ProgressionService,
	storage *StorageService,
	rdb *redis.Client,
) *CurriculumService {
	return &CurriculumService{
		Curriculum:  curriculum,
		Questions:   questions,
		Assessments: assessments,
		Progress:    progress,
		Progression: progression,
		Storage:     storage,
		Redis:       rdb,
	}
}

// Outline returns the whole curriculum tree with per-scope lock state for
// the user. The structural part comes from the cache; accessibility and
// completion are evaluated fresh.
func (s *CurriculumService) Outline(ctx context.Context, userID uint) ([]OutlineYear, error) {
	years, err := s.staticOutline(ctx)
	if err != nil {
		return nil, err
	}

	completed := map[uint]bool{}
	rows, err := s.Progress.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		if p.Completed {
			completed[p.LessonID] = true
		}
	}

	for yi := range years {
		year := &years[yi]
		dec, err := s.Progression.CanAccessYear(userID, year.ID)
		if err != nil {
			return nil, err
		}
		year.Accessible, year.Reason = dec.Accessible, dec.Reason

		for ti := range year.Terms {
			term := &year.Terms[ti]
			dec, err := s.Progression.CanAccessTerm(userID, term.ID)
			if err != nil {
				return nil, err
			}
			term.Accessible, term.Reason = dec.Accessible, dec.Reason

			for mi := range term.Modules {
				module := &term.Modules[mi]
				dec, err := s.Progression.CanAccessModule(userID, module.ID)
				if err != nil {
					return nil, err
				}
				module.Accessible, module.Reason = dec.Accessible, dec.Reason

				for li := range module.Lessons {
					lesson := &module.Lessons[li]
					dec, err := s.Progression.CanAccessLesson(userID, lesson.ID)
					if err != nil {
						return nil, err
					}
					lesson.Accessible, lesson.Reason = dec.Accessible, dec.Reason
					lesson.Completed = completed[lesson.ID]
				}
			}
		}
	}
	return years, nil
}

func (s *CurriculumService) staticOutline(ctx context.Context) ([]OutlineYear, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, outlineCacheKey).Result()
		if err == nil {
			var cached []OutlineYear
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("outline cache read failed", zap.Error(err))
		}
	}

	years, err := s.buildStaticOutline()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(years); err == nil {
			if err := s.Redis.Set(ctx, outlineCacheKey, payload, outlineCacheTTL).Err(); err != nil {
				logger.Log.Warn("outline cache write failed", zap.Error(err))
			}
		}
	}
	return years, nil
}

func (s *CurriculumService) buildStaticOutline() ([]OutlineYear, error) {
	yearRows, err := s.Curriculum.ListYears()
	if err != nil {
		return nil, err
	}

	years := make([]OutlineYear, 0, len(yearRows))
	for _, y := range yearRows {
		review, err := s.Assessments.FindCumulativeByYearID(y.ID)
		if err != nil {
			return nil, err
		}
		oy := OutlineYear{ID: y.ID, Title: y.Title, Position: y.Position, HasCumulativeReview: review != nil}

		termRows, err := s.Curriculum.ListTermsByYear(y.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range termRows {
			exam, err := s.Assessments.FindByTermID(t.ID)
			if err != nil {
				return nil, err
			}
			ot := OutlineTerm{ID: t.ID, Title: t.Title, Position: t.Position, Free: t.Free, HasExam: exam != nil}

			moduleRows, err := s.Curriculum.ListModulesByTerm(t.ID)
			if err != nil {
				return nil, err
			}
			for _, m := range moduleRows {
				exam, err := s.Assessments.FindByModuleID(m.ID)
				if err != nil {
					return nil, err
				}
				om := OutlineModule{ID: m.ID, Title: m.Title, Position: m.Position, HasExam: exam != nil}

				lessonRows, err := s.Curriculum.ListLessonsByModule(m.ID)
				if err != nil {
					return nil, err
				}
				for _, l := range lessonRows {
					quiz, err := s.Assessments.FindByLessonID(l.ID)
					if err != nil {
						return nil, err
					}
					om.Lessons = append(om.Lessons, OutlineLesson{
						ID:           l.ID,
						Title:        l.Title,
						Position:     l.Position,
						HasQuiz:      quiz != nil,
						ThumbnailURL: l.ThumbnailURL,
					})
				}
				ot.Modules = append(ot.Modules, om)
			}
			oy.Terms = append(oy.Terms, ot)
		}
		years = append(years, oy)
	}
	return years, nil
}

func (s *CurriculumService) invalidateOutline(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, outlineCacheKey).Err(); err != nil {
		logger.Log.Warn("outline cache invalidation failed", zap.Error(err))
	}
}

// LessonDetail returns the full lesson content, gated by the progression
// predicate. A denial comes back as the decision, not an error.
func (s *CurriculumService) LessonDetail(userID, lessonID uint) (*model.Lesson, AccessDecision, error) {
	dec, err := s.Progression.CanAccessLesson(userID, lessonID)
	if err != nil {
		return nil, AccessDecision{}, err
	}
	if !dec.Accessible {
		return nil, dec, nil
	}
	lesson, err := s.Curriculum.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, denied("lesson not found"), nil
	}
	if err != nil {
		return nil, AccessDecision{}, err
	}
	return lesson, dec, nil
}

// MarkLessonComplete is the explicit completion path for quiz-less
// lessons; lessons with a quiz complete only through a passing attempt.
func (s *CurriculumService) MarkLessonComplete(userID, lessonID uint) (AccessDecision, error) {
	dec, err := s.Progression.CanAccessLesson(userID, lessonID)
	if err != nil || !dec.Accessible {
		return dec, err
	}
	quiz, err := s.Assessments.FindByLessonID(lessonID)
	if err != nil {
		return AccessDecision{}, err
	}
	if quiz != nil {
		return AccessDecision{}, util.ErrLessonHasQuiz
	}
	if err := s.Progress.MarkCompleted(userID, lessonID); err != nil {
		return AccessDecision{}, err
	}
	return allowed(), nil
}

// Authoring. Position uniqueness within the parent scope is enforced here,
// before insert.

func (s *CurriculumService) CreateYear(ctx context.Context, title string, position int) (*model.Year, error) {
	taken, err := s.Curriculum.YearPositionTaken(position)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrPositionTaken
	}
	year := &model.Year{Title: title, Position: position}
	if err := s.Curriculum.CreateYear(year); err != nil {
		return nil, err
	}
	s.invalidateOutline(ctx)
	return year, nil
}

func (s *CurriculumService) CreateTerm(ctx context.Context, yearID uint, title string, position int, free bool) (*model.Term, error) {
	if _, err := s.Curriculum.FindYearByID(yearID); err != nil {
		return nil, err
	}
	taken, err := s.Curriculum.PositionTaken(&model.Term{}, "year_id", yearID, position)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrPositionTaken
	}
	term := &model.Term{YearID: yearID, Title: title, Position: position, Free: free}
	if err := s.Curriculum.CreateTerm(term); err != nil {
		return nil, err
	}
	s.invalidateOutline(ctx)
	return term, nil
}

func (s *CurriculumService) CreateModule(ctx context.Context, termID uint, title, description string, position int) (*model.Module, error) {
	if _, err := s.Curriculum.FindTermByID(termID); err != nil {
		return nil, err
	}
	taken, err := s.Curriculum.PositionTaken(&model.Module{}, "term_id", termID, position)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrPositionTaken
	}
	module := &model.Module{TermID: termID, Title: title, Description: description, Position: position}
	if err := s.Curriculum.CreateModule(module); err != nil {
		return nil, err
	}
	s.invalidateOutline(ctx)
	return module, nil
}

func (s *CurriculumService) CreateLesson(ctx context.Context, moduleID uint, title, content string, position int) (*model.Lesson, error) {
	if _, err := s.Curriculum.FindModuleByID(moduleID); err != nil {
		return nil, err
	}
	taken, err := s.Curriculum.PositionTaken(&model.Lesson{}, "module_id", moduleID, position)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrPositionTaken
	}
	lesson := &model.Lesson{ModuleID: moduleID, Title: title, Content: content, Position: position}
	if err := s.Curriculum.CreateLesson(lesson); err != nil {
		return nil, err
	}
	s.invalidateOutline(ctx)
	return lesson, nil
}

// CreateAssessment validates the tier and the exactly-one-scope rule, and
// checks the referenced scope exists.
func (s *CurriculumService) CreateAssessment(ctx context.Context, a *model.Assessment) error {
	if !a.Tier.Valid() {
		return util.ErrInvalidTier
	}

	refs := 0
	for _, set := range []bool{a.LessonID != nil, a.ModuleID != nil, a.TermID != nil, a.YearID != nil} {
		if set {
			refs++
		}
	}
	if refs != 1 {
		return util.ErrInvalidScope
	}

	var err error
	switch a.Tier {
	case model.TierLessonCheck:
		if a.LessonID == nil {
			return util.ErrInvalidScope
		}
		_, err = s.Curriculum.FindLessonByID(*a.LessonID)
	case model.TierModuleExam:
		if a.ModuleID == nil {
			return util.ErrInvalidScope
		}
		_, err = s.Curriculum.FindModuleByID(*a.ModuleID)
	case model.TierTermExam:
		if a.TermID == nil {
			return util.ErrInvalidScope
		}
		_, err = s.Curriculum.FindTermByID(*a.TermID)
	case model.TierCumulativeReview:
		if a.YearID == nil {
			return util.ErrInvalidScope
		}
		_, err = s.Curriculum.FindYearByID(*a.YearID)
	}
	if err != nil {
		return err
	}

	if err := s.Assessments.Create(a); err != nil {
		return err
	}
	s.invalidateOutline(ctx)
	return nil
}

type NewAnswer struct {
	Text        string `json:"text" binding:"required"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
	Position    int    `json:"position"`
}

type NewQuestion struct {
	Text       string             `json:"text" binding:"required"`
	Type       model.QuestionType `json:"type" binding:"required"`
	ConceptTag *string            `json:"conceptTag"`
	Position   int                `json:"position"`
	Answers    []NewAnswer        `json:"answers" binding:"required"`
}

// AddQuestion enforces the single-correct-answer invariant the grading
// engine assumes, plus position uniqueness within the assessment.
func (s *CurriculumService) AddQuestion(assessmentID uint, in NewQuestion) (*model.Question, error) {
	if _, err := s.Assessments.FindByID(assessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	if len(in.Answers) < 2 {
		return nil, util.ErrNoAnswers
	}
	correct := 0
	for _, a := range in.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, util.ErrNoCorrectAnswer
	}

	taken, err := s.Curriculum.PositionTaken(&model.Question{}, "assessment_id", assessmentID, in.Position)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrPositionTaken
	}

	if in.ConceptTag != nil && strings.TrimSpace(*in.ConceptTag) == "" {
		in.ConceptTag = nil
	}

	question := &model.Question{
		AssessmentID: assessmentID,
		Text:         in.Text,
		Type:         in.Type,
		ConceptTag:   in.ConceptTag,
		Position:     in.Position,
	}
	answers := make([]model.Answer, len(in.Answers))
	for i, a := range in.Answers {
		answers[i] = model.Answer{
			Text:        a.Text,
			IsCorrect:   a.IsCorrect,
			Explanation: a.Explanation,
			Position:    a.Position,
		}
	}

	if err := s.Questions.CreateWithAnswers(question, answers); err != nil {
		return nil, err
	}
	return question, nil
}

// UploadLessonVideo stores a lesson video from a local staging path,
// generates a thumbnail frame, and records both URLs on the lesson.
func (s *CurriculumService) UploadLessonVideo(ctx context.Context, lessonID uint, localPath, filename, contentType string) (*model.Lesson, error) {
	lesson, err := s.Curriculum.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	videoURL, err := s.Storage.UploadFile(ctx, filename, localPath, contentType)
	if err != nil {
		return nil, err
	}
	lesson.VideoURL = videoURL

	if info, err := util.GetVideoInfo(localPath); err != nil {
		logger.Log.Warn("video probe failed",
			zap.Uint("lessonId", lessonID), zap.Error(err))
	} else {
		lesson.VideoDuration = info.Duration
	}

	thumbName := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_thumb.jpg"
	thumbPath := filepath.Join(filepath.Dir(localPath), thumbName)
	if err := util.GenerateThumbnail(localPath, thumbPath, "00:00:03"); err != nil {
		logger.Log.Warn("thumbnail generation failed",
			zap.Uint("lessonId", lessonID), zap.Error(err))
	} else {
		thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg")
		if err != nil {
			logger.Log.Warn("thumbnail upload failed",
				zap.Uint("lessonId", lessonID), zap.Error(err))
		} else {
			lesson.ThumbnailURL = thumbURL
		}
	}

	if err := s.Curriculum.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	s.invalidateOutline(ctx)
	return lesson, nil
}
