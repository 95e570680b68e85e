package controller

import (
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// List godoc
// @Summary Achievements with the current user's progress
// @Tags achievement
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AchievementView}
// @Router /api/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.AchievementService.GetUserAchievements(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}
