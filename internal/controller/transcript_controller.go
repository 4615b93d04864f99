package controller

import (
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranscriptController struct {
	TranscriptService *service.TranscriptService
}

func NewTranscriptController(transcriptService *service.TranscriptService) *TranscriptController {
	return &TranscriptController{TranscriptService: transcriptService}
}

// Transcript godoc
// @Summary Transcript with GPA
// @Description Terminal per-scope scores plus the weighted GPA; gpa is null until a weighted entry exists.
// @Tags transcript
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TranscriptView}
// @Router /api/transcript [get]
func (c *TranscriptController) Transcript(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.TranscriptService.Transcript(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// YearGPA godoc
// @Summary Year GPA
// @Description The year-advancement GPA: module and term exams only.
// @Tags transcript
// @Produce  json
// @Param   id path int true "year id"
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/transcript/years/{id}/gpa [get]
func (c *TranscriptController) YearGPA(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := uintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid year id")
		return
	}

	gpa, err := c.TranscriptService.YearGPA(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"gpa": gpa})
}
