package controller

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// Start godoc
// @Summary Start a training session
// @Tags session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartSessionRequest true "scenario key and optional difficulty override"
// @Success 201 {object} util.Response{data=model.TrainingSession}
// @Failure 404 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Start(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

type AddMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
	Voice   string `json:"voice"`
}

// AddMessage godoc
// @Summary Append a message to a session transcript
// @Tags session
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body AddMessageRequest true "message"
// @Success 201 {object} util.Response{data=model.ConversationMessage}
// @Router /api/sessions/{id}/messages [post]
func (c *SessionController) AddMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var req AddMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.SessionService.AddMessage(claims.UserID, id, model.MessageRole(req.Role), req.Content, req.Voice)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

// GetMessages godoc
// @Summary Session transcript in order
// @Tags session
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.ConversationMessage}
// @Router /api/sessions/{id}/messages [get]
func (c *SessionController) GetMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	messages, err := c.SessionService.GetMessages(claims.UserID, id)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// Complete godoc
// @Summary Complete a session and receive the evaluation
// @Tags session
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.SessionSummary}
// @Router /api/sessions/{id}/complete [post]
func (c *SessionController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	summary, err := c.SessionService.Complete(claims.UserID, id)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// Abandon godoc
// @Summary Abandon an active session without evaluation
// @Tags session
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/abandon [post]
func (c *SessionController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	if err := c.SessionService.Abandon(claims.UserID, id); err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// History godoc
// @Summary Paginated session history for the current user
// @Tags session
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/sessions [get]
func (c *SessionController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 20)

	sessions, total, err := c.SessionService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: sessions, Total: total, Page: page, Limit: limit})
}

// GetSummary godoc
// @Summary Session detail with transcript and evaluation
// @Tags session
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.SessionSummary}
// @Router /api/sessions/{id} [get]
func (c *SessionController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	summary, err := c.SessionService.GetSummary(claims.UserID, id)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

func (c *SessionController) writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSessionNotActive), errors.Is(err, util.ErrSessionEvaluated):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
