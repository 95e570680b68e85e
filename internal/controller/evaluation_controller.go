package controller

import (
	"net/http"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	EvaluationService *service.EvaluationService
}

func NewEvaluationController(evaluationService *service.EvaluationService) *EvaluationController {
	return &EvaluationController{EvaluationService: evaluationService}
}

// Evaluate godoc
// @Summary Score a transcript against the rubric
// @Description Always returns 200 with a complete rubric. When the model
// @Description output cannot be used, a canned rubric is served with the
// @Description degraded flag set.
// @Tags evaluation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EvaluationRequest true "transcript and scenario context"
// @Success 200 {object} service.Rubric
// @Failure 400 {object} util.Response
// @Router /api/evaluation [post]
func (c *EvaluationController) Evaluate(ctx *gin.Context) {
	var req service.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rubric := c.EvaluationService.Evaluate(req)
	ctx.JSON(http.StatusOK, rubric)
}
