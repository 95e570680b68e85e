package controller

import (
	"errors"
	"net/http"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExtractionController struct {
	ExtractionService *service.ExtractionService
}

func NewExtractionController(extractionService *service.ExtractionService) *ExtractionController {
	return &ExtractionController{ExtractionService: extractionService}
}

type ExtractRequest struct {
	URL string `json:"url" binding:"required"`
}

// Extract godoc
// @Summary Extract sales-relevant content from a web page
// @Tags extraction
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ExtractRequest true "page URL"
// @Success 200 {object} service.ExtractionResult
// @Failure 400 {object} object
// @Failure 502 {object} object
// @Router /api/extract [post]
func (c *ExtractionController) Extract(ctx *gin.Context) {
	var req ExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "url is required", "status": "error"})
		return
	}

	result, err := c.ExtractionService.Extract(req.URL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidURL):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "status": "error"})
		case errors.Is(err, util.ErrUnreachableURL):
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "status": "error"})
		default:
			logger.Log.Error("extraction failed", zap.String("url", req.URL), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed", "status": "error"})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}
