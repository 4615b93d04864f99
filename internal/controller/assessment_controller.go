package controller

import (
	"errors"

	"academy_backend/internal/engine"
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Questions godoc
// @Summary Assessment questions
// @Description Returns the question set in student form: no answer key, no explanations. Rejected with 403 while the retry policy forbids an attempt.
// @Tags assessments
// @Produce  json
// @Param   id path int true "assessment id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.QuestionView}
// @Failure 403 {object} util.Response{data=engine.Eligibility} "retry policy forbids an attempt"
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/questions [get]
func (c *AssessmentController) Questions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	eligibility, err := c.AssessmentService.RetryEligibility(claims.UserID, id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	if !eligibility.Eligible {
		ctx.JSON(403, util.Response{Code: 403, Message: "retry not yet allowed", Data: eligibility})
		return
	}

	views, err := c.AssessmentService.Questions(id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

type SubmitRequest struct {
	// Answers maps question id to the chosen answer id.
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit an attempt
// @Description Grades the submission and records the attempt. An attempt outside the retry policy comes back with accepted=false and the next eligible time.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Param   id path int true "assessment id"
// @Param   body body SubmitRequest true "answers"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AssessmentResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Submit(claims.UserID, id, engine.Submission(req.Answers))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// RetryEligibility godoc
// @Summary Retry eligibility
// @Description Whether the user may attempt the assessment now, and if not, when.
// @Tags assessments
// @Produce  json
// @Param   id path int true "assessment id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=engine.Eligibility}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/eligibility [get]
func (c *AssessmentController) RetryEligibility(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid assessment id")
		return
	}

	eligibility, err := c.AssessmentService.RetryEligibility(claims.UserID, id)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, eligibility)
}

func (c *AssessmentController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrAssessmentNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
