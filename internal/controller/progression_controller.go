package controller

import (
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressionController struct {
	ProgressionService *service.ProgressionService
}

func NewProgressionController(progressionService *service.ProgressionService) *ProgressionController {
	return &ProgressionController{ProgressionService: progressionService}
}

// Access checks all answer 200 with {accessible, reason}; a locked scope
// is a normal response, not an HTTP error.

// CheckLesson godoc
// @Summary Lesson access check
// @Tags progression
// @Produce  json
// @Param   id path int true "lesson id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AccessDecision}
// @Router /api/access/lessons/{id} [get]
func (c *ProgressionController) CheckLesson(ctx *gin.Context) {
	c.check(ctx, c.ProgressionService.CanAccessLesson)
}

// CheckModule godoc
// @Summary Module access check
// @Tags progression
// @Produce  json
// @Param   id path int true "module id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AccessDecision}
// @Router /api/access/modules/{id} [get]
func (c *ProgressionController) CheckModule(ctx *gin.Context) {
	c.check(ctx, c.ProgressionService.CanAccessModule)
}

// CheckTerm godoc
// @Summary Term access check
// @Tags progression
// @Produce  json
// @Param   id path int true "term id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AccessDecision}
// @Router /api/access/terms/{id} [get]
func (c *ProgressionController) CheckTerm(ctx *gin.Context) {
	c.check(ctx, c.ProgressionService.CanAccessTerm)
}

// CheckYear godoc
// @Summary Year access check
// @Tags progression
// @Produce  json
// @Param   id path int true "year id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AccessDecision}
// @Router /api/access/years/{id} [get]
func (c *ProgressionController) CheckYear(ctx *gin.Context) {
	c.check(ctx, c.ProgressionService.CanAccessYear)
}

func (c *ProgressionController) check(ctx *gin.Context, predicate func(userID, scopeID uint) (service.AccessDecision, error)) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}

	dec, err := predicate(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dec)
}
