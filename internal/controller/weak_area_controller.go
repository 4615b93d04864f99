package controller

import (
	"academy_backend/internal/service"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WeakAreaController struct {
	WeakAreaService *service.WeakAreaService
}

func NewWeakAreaController(weakAreaService *service.WeakAreaService) *WeakAreaController {
	return &WeakAreaController{WeakAreaService: weakAreaService}
}

// List godoc
// @Summary Weak-concept ledger
// @Description Every tracked concept for the user, worst first.
// @Tags weak-areas
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.WeakArea}
// @Router /api/weak-areas [get]
func (c *WeakAreaController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	areas, err := c.WeakAreaService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, areas)
}

// RequiredReviews godoc
// @Summary Required concept reviews
// @Description Concepts past the review threshold; blocking ones additionally pin the user to the current term.
// @Tags weak-areas
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.RequiredReview}
// @Router /api/weak-areas/reviews [get]
func (c *WeakAreaController) RequiredReviews(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	reviews, err := c.WeakAreaService.RequiredReviews(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reviews)
}
