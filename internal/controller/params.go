package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
