package controller

import (
	"errors"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

// List godoc
// @Summary Active challenges with the user's participation state
// @Tags challenge
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ChallengeView}
// @Router /api/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	challenges, err := c.ChallengeService.ListActive(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// Create godoc
// @Summary Create a challenge (admin)
// @Tags challenge
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChallengeRequest true "challenge definition"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Router /api/admin/challenges [post]
func (c *ChallengeController) Create(ctx *gin.Context) {
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// Join godoc
// @Summary Join a challenge (idempotent)
// @Tags challenge
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Success 200 {object} util.Response{data=model.ChallengeParticipation}
// @Failure 409 {object} util.Response
// @Router /api/challenges/{id}/join [post]
func (c *ChallengeController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}

	participation, err := c.ChallengeService.Join(claims.UserID, id)
	if err != nil {
		c.writeChallengeError(ctx, err)
		return
	}
	util.Success(ctx, participation)
}

// Leave godoc
// @Summary Leave a challenge (idempotent)
// @Tags challenge
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/leave [post]
func (c *ChallengeController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}

	if err := c.ChallengeService.Leave(claims.UserID, id); err != nil {
		c.writeChallengeError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubmitScoreRequest struct {
	Score int `json:"score" binding:"required,min=0"`
}

// SubmitScore godoc
// @Summary Submit a score toward a challenge target
// @Tags challenge
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "challenge id"
// @Param body body SubmitScoreRequest true "score"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/score [post]
func (c *ChallengeController) SubmitScore(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid challenge id")
		return
	}

	var req SubmitScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ChallengeService.SubmitScore(claims.UserID, id, req.Score); err != nil {
		c.writeChallengeError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *ChallengeController) writeChallengeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrChallengeNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrChallengeInactive):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrNotParticipating):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
