package controller

import (
	"errors"
	"net/http"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConversationController struct {
	ConversationService *service.ConversationService
	SessionService      *service.SessionService
}

func NewConversationController(conversationService *service.ConversationService, sessionService *service.SessionService) *ConversationController {
	return &ConversationController{
		ConversationService: conversationService,
		SessionService:      sessionService,
	}
}

// Respond godoc
// @Summary One AI turn of a role-play conversation
// @Tags conversation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ConversationRequest true "message, scenario key, difficulty and trailing history"
// @Success 200 {object} service.ConversationResponse
// @Failure 500 {object} util.Response
// @Router /api/conversation [post]
func (c *ConversationController) Respond(ctx *gin.Context) {
	var req service.ConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ConversationService.Respond(req)
	if err != nil {
		logger.Log.Error("conversation turn failed", zap.String("scenario", req.Scenario), zap.Error(err))
		util.Error(ctx, http.StatusInternalServerError, "completion request failed")
		return
	}
	util.Success(ctx, resp)
}

// RespondEnhanced godoc
// @Summary AI turn with knowledge-base grounding and live analysis
// @Tags conversation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EnhancedConversationRequest true "messages, scenario and knowledge base"
// @Success 200 {object} service.EnhancedConversationResponse
// @Failure 500 {object} object
// @Router /api/conversation/enhanced [post]
func (c *ConversationController) RespondEnhanced(ctx *gin.Context) {
	var req service.EnhancedConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ConversationService.RespondEnhanced(req)
	if err != nil {
		logger.Log.Error("enhanced conversation turn failed", zap.Error(err))
		// The dialogue must survive upstream failures: the error body
		// carries a speakable fallback so the client can keep going.
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":                 "completion request failed",
			"fallbackResponse":      service.FallbackReply,
			"conversationContinues": true,
			"timestamp":             time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	util.Success(ctx, resp)
}

// RecordMetric godoc
// @Summary Attach a live analysis snapshot to a session
// @Tags conversation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body service.RealTimeAnalysis true "analysis snapshot"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/metrics [post]
func (c *ConversationController) RecordMetric(ctx *gin.Context) {
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

	var analysis service.RealTimeAnalysis
	if err := ctx.ShouldBindJSON(&analysis); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.RecordMetric(claims.UserID, id, &analysis); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
