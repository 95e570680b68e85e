package controller

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// BehaviorController manages the configurable AI client personalities.
type BehaviorController struct {
	ScenarioService *service.ScenarioService
}

func NewBehaviorController(scenarioService *service.ScenarioService) *BehaviorController {
	return &BehaviorController{ScenarioService: scenarioService}
}

// List godoc
// @Summary List behaviors (admin)
// @Tags behavior
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Behavior}
// @Router /api/admin/behaviors [get]
func (c *BehaviorController) List(ctx *gin.Context) {
	behaviors, err := c.ScenarioService.ListBehaviors()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, behaviors)
}

// Create godoc
// @Summary Create a behavior (admin)
// @Tags behavior
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Behavior true "behavior"
// @Success 201 {object} util.Response{data=model.Behavior}
// @Router /api/admin/behaviors [post]
func (c *BehaviorController) Create(ctx *gin.Context) {
	var behavior model.Behavior
	if err := ctx.ShouldBindJSON(&behavior); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if behavior.Name == "" {
		util.BadRequest(ctx, "name is required")
		return
	}

	if err := c.ScenarioService.CreateBehavior(&behavior); err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.BadRequest(ctx, "scenarioId does not exist")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, behavior)
}

// Update godoc
// @Summary Update a behavior (admin)
// @Tags behavior
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "behavior id"
// @Param body body model.Behavior true "behavior"
// @Success 200 {object} util.Response{data=model.Behavior}
// @Router /api/admin/behaviors/{id} [put]
func (c *BehaviorController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid behavior id")
		return
	}

	var behavior model.Behavior
	if err := ctx.ShouldBindJSON(&behavior); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ScenarioService.UpdateBehavior(id, &behavior)
	if err != nil {
		if errors.Is(err, util.ErrBehaviorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary Delete a behavior (admin)
// @Tags behavior
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "behavior id"
// @Success 200 {object} util.Response
// @Router /api/admin/behaviors/{id} [delete]
func (c *BehaviorController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid behavior id")
		return
	}

	if err := c.ScenarioService.DeleteBehavior(id); err != nil {
		if errors.Is(err, util.ErrBehaviorNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
