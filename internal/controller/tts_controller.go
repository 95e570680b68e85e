package controller

import (
	"net/http"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TTSController struct {
	TTSService *service.TTSService
}

func NewTTSController(ttsService *service.TTSService) *TTSController {
	return &TTSController{TTSService: ttsService}
}

// Synthesize godoc
// @Summary Synthesize speech for an AI reply
// @Tags tts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TTSRequest true "text and symbolic voice name"
// @Success 200 {object} service.TTSResponse
// @Failure 400 {object} util.Response
// @Failure 500 {object} object
// @Router /api/tts [post]
func (c *TTSController) Synthesize(ctx *gin.Context) {
	var req service.TTSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.TTSService.Synthesize(req)
	if err != nil {
		logger.Log.Error("speech synthesis failed", zap.String("voice", req.Voice), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "speech synthesis failed"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Voices godoc
// @Summary List the symbolic voices available for synthesis
// @Tags tts
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/tts/voices [get]
func (c *TTSController) Voices(ctx *gin.Context) {
	util.Success(ctx, service.AvailableVoices())
}
