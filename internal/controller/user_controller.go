package controller

import (
	"errors"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService  *service.UserService
	StatsService *service.StatsService
}

func NewUserController(userService *service.UserService, statsService *service.StatsService) *UserController {
	return &UserController{
		UserService:  userService,
		StatsService: statsService,
	}
}

// UpdateProfile godoc
// @Summary Update name, language or avatar
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChangePasswordRequest true "current and new password"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/user/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ChangePassword(claims.UserID, req); err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "current password is incorrect")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GetStats godoc
// @Summary Training stats for the current user
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserStats}
// @Router /api/user/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.UserService.GetStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// GetRecentActivity godoc
// @Summary Recent XP activity log
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "max entries" default(20)
// @Success 200 {object} util.Response{data=[]model.ActivityLog}
// @Router /api/user/activity [get]
func (c *UserController) GetRecentActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := queryInt(ctx, "limit", 20)
	activity, err := c.StatsService.GetRecentActivity(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}
