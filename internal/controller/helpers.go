package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func queryInt(ctx *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(ctx.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
