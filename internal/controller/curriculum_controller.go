package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
}

func NewCurriculumController(curriculumService *service.CurriculumService) *CurriculumController {
	return &CurriculumController{CurriculumService: curriculumService}
}

// Outline godoc
// @Summary Curriculum outline
// @Description The full years/terms/modules/lessons tree with per-scope lock state for the caller.
// @Tags curriculum
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.OutlineYear}
// @Router /api/curriculum [get]
func (c *CurriculumController) Outline(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	outline, err := c.CurriculumService.Outline(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, outline)
}

// LessonDetail godoc
// @Summary Lesson content
// @Description Full lesson content, gated by the progression rules. A locked lesson answers 403 with the reason.
// @Tags curriculum
// @Produce  json
// @Param   id path int true "lesson id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response{data=service.AccessDecision}
// @Router /api/lessons/{id} [get]
func (c *CurriculumController) LessonDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	lesson, dec, err := c.CurriculumService.LessonDetail(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if lesson == nil {
		ctx.JSON(403, util.Response{Code: 403, Message: "lesson locked", Data: dec})
		return
	}
	util.Success(ctx, lesson)
}

// CompleteLesson godoc
// @Summary Mark a quiz-less lesson complete
// @Description Lessons with a quiz complete only through a passing attempt and reject this call.
// @Tags curriculum
// @Produce  json
// @Param   id path int true "lesson id"
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response{data=service.AccessDecision}
// @Failure 409 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *CurriculumController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	dec, err := c.CurriculumService.MarkLessonComplete(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrLessonHasQuiz) {
			util.Error(ctx, 409, "This lesson completes through its quiz")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if !dec.Accessible {
		ctx.JSON(403, util.Response{Code: 403, Message: "lesson locked", Data: dec})
		return
	}
	util.Success(ctx, nil)
}

// Authoring endpoints (teacher/admin role).

type CreateYearRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position" binding:"required,min=1"`
}

// CreateYear godoc
// @Summary Create a year
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   body body CreateYearRequest true "year"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Year}
// @Failure 409 {object} util.Response "position already used"
// @Router /api/admin/years [post]
func (c *CurriculumController) CreateYear(ctx *gin.Context) {
	var req CreateYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	year, err := c.CurriculumService.CreateYear(ctx.Request.Context(), req.Title, req.Position)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, year)
}

type CreateTermRequest struct {
	YearID   uint   `json:"yearId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position" binding:"required,min=1"`
	Free     bool   `json:"free"`
}

// CreateTerm godoc
// @Summary Create a term
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   body body CreateTermRequest true "term"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Term}
// @Failure 409 {object} util.Response "position already used"
// @Router /api/admin/terms [post]
func (c *CurriculumController) CreateTerm(ctx *gin.Context) {
	var req CreateTermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	term, err := c.CurriculumService.CreateTerm(ctx.Request.Context(), req.YearID, req.Title, req.Position, req.Free)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, term)
}

type CreateModuleRequest struct {
	TermID      uint   `json:"termId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"required,min=1"`
}

// CreateModule godoc
// @Summary Create a module
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   body body CreateModuleRequest true "module"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 409 {object} util.Response "position already used"
// @Router /api/admin/modules [post]
func (c *CurriculumController) CreateModule(ctx *gin.Context) {
	var req CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CurriculumService.CreateModule(ctx.Request.Context(), req.TermID, req.Title, req.Description, req.Position)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

type CreateLessonRequest struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Position int    `json:"position" binding:"required,min=1"`
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   body body CreateLessonRequest true "lesson"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 409 {object} util.Response "position already used"
// @Router /api/admin/lessons [post]
func (c *CurriculumController) CreateLesson(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CurriculumService.CreateLesson(ctx.Request.Context(), req.ModuleID, req.Title, req.Content, req.Position)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

type CreateAssessmentRequest struct {
	Title         string  `json:"title" binding:"required"`
	Tier          string  `json:"tier" binding:"required"`
	LessonID      *uint   `json:"lessonId"`
	ModuleID      *uint   `json:"moduleId"`
	TermID        *uint   `json:"termId"`
	YearID        *uint   `json:"yearId"`
	PassThreshold float64 `json:"passThreshold"`
	MaxAttempts   int     `json:"maxAttempts"`
	PeriodDays    int     `json:"periodDays"`
	CooldownHours int     `json:"cooldownHours"`
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Description Tier plus exactly one scope reference. Zero policy columns fall back to the tier defaults.
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   body body CreateAssessmentRequest true "assessment"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response "invalid tier or scope"
// @Router /api/admin/assessments [post]
func (c *CurriculumController) CreateAssessment(ctx *gin.Context) {
	var req CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment := &model.Assessment{
		Title:         req.Title,
		Tier:          model.Tier(req.Tier),
		LessonID:      req.LessonID,
		ModuleID:      req.ModuleID,
		TermID:        req.TermID,
		YearID:        req.YearID,
		PassThreshold: req.PassThreshold,
		MaxAttempts:   req.MaxAttempts,
		PeriodDays:    req.PeriodDays,
		CooldownHours: req.CooldownHours,
	}

	if err := c.CurriculumService.CreateAssessment(ctx.Request.Context(), assessment); err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// AddQuestion godoc
// @Summary Add a question to an assessment
// @Description Exactly one answer must be marked correct; positions are unique within the assessment.
// @Tags authoring
// @Accept  json
// @Produce  json
// @Param   id path int true "assessment id"
// @Param   body body service.NewQuestion true "question with answers"
// @Security BearerAuth
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "position already used"
// @Router /api/admin/assessments/{id}/questions [post]
func (c *CurriculumController) AddQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req service.NewQuestion
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CurriculumService.AddQuestion(id, req)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video, generates a thumbnail frame and records both URLs on the lesson.
// @Tags authoring
// @Accept  mpfd
// @Produce  json
// @Param   id path int true "lesson id"
// @Param   file formData file true "video file"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id}/video [post]
func (c *CurriculumController) UploadLessonVideo(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	// Stage locally so the thumbnail frame can be extracted before upload.
	staging := filepath.Join(os.TempDir(), fmt.Sprintf("lesson_%d_%s", id, filepath.Base(file.Filename)))
	if err := ctx.SaveUploadedFile(file, staging); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(staging)

	contentType := file.Header.Get("Content-Type")
	lesson, err := c.CurriculumService.UploadLessonVideo(ctx.Request.Context(), id, staging, file.Filename, contentType)
	if err != nil {
		c.handleAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

func (c *CurriculumController) handleAuthoringError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPositionTaken):
		util.Error(ctx, 409, "Position already used within this scope")
	case errors.Is(err, util.ErrInvalidTier), errors.Is(err, util.ErrInvalidScope),
		errors.Is(err, util.ErrNoCorrectAnswer), errors.Is(err, util.ErrNoAnswers):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
