package controller

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScenarioController struct {
	ScenarioService *service.ScenarioService
}

func NewScenarioController(scenarioService *service.ScenarioService) *ScenarioController {
	return &ScenarioController{ScenarioService: scenarioService}
}

// List godoc
// @Summary List training scenarios
// @Tags scenario
// @Produce json
// @Param all query bool false "include inactive scenarios (admin)"
// @Success 200 {object} util.Response{data=[]model.Scenario}
// @Router /api/scenarios [get]
func (c *ScenarioController) List(ctx *gin.Context) {
	activeOnly := ctx.Query("all") != "true"
	scenarios, err := c.ScenarioService.List(activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scenarios)
}

// Get godoc
// @Summary Scenario detail by id
// @Tags scenario
// @Produce json
// @Param id path int true "scenario id"
// @Success 200 {object} util.Response{data=model.Scenario}
// @Failure 404 {object} util.Response
// @Router /api/scenarios/{id} [get]
func (c *ScenarioController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid scenario id")
		return
	}

	scenario, err := c.ScenarioService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, scenario)
}

// Create godoc
// @Summary Create a scenario (admin)
// @Tags scenario
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Scenario true "scenario"
// @Success 201 {object} util.Response{data=model.Scenario}
// @Router /api/admin/scenarios [post]
func (c *ScenarioController) Create(ctx *gin.Context) {
	var scenario model.Scenario
	if err := ctx.ShouldBindJSON(&scenario); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if scenario.Key == "" || scenario.Title == "" {
		util.BadRequest(ctx, "key and title are required")
		return
	}

	if err := c.ScenarioService.Create(&scenario); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, scenario)
}

// Update godoc
// @Summary Update a scenario (admin)
// @Tags scenario
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "scenario id"
// @Param body body model.Scenario true "scenario"
// @Success 200 {object} util.Response{data=model.Scenario}
// @Router /api/admin/scenarios/{id} [put]
func (c *ScenarioController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid scenario id")
		return
	}

	var scenario model.Scenario
	if err := ctx.ShouldBindJSON(&scenario); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.ScenarioService.Update(id, &scenario)
	if err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary Delete a scenario (admin)
// @Tags scenario
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "scenario id"
// @Success 200 {object} util.Response
// @Router /api/admin/scenarios/{id} [delete]
func (c *ScenarioController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid scenario id")
		return
	}

	if err := c.ScenarioService.Delete(id); err != nil {
		if errors.Is(err, util.ErrScenarioNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
