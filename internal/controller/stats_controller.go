package controller

import (
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// Leaderboard godoc
// @Summary XP leaderboard
// @Tags stats
// @Produce json
// @Param limit query int false "max entries" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *StatsController) Leaderboard(ctx *gin.Context) {
	limit := queryInt(ctx, "limit", 10)
	entries, err := c.StatsService.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Progress godoc
// @Summary Level and XP progress for the current user
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserProgress}
// @Router /api/user/progress [get]
func (c *StatsController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.StatsService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
