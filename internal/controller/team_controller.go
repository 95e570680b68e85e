package controller

import (
	"errors"
	"roleplay_coach_backend/internal/service"
	"roleplay_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	TeamService *service.TeamService
}

func NewTeamController(teamService *service.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

// List godoc
// @Summary Public teams
// @Tags team
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Team}
// @Router /api/teams [get]
func (c *TeamController) List(ctx *gin.Context) {
	teams, err := c.TeamService.ListPublic()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// Create godoc
// @Summary Create a team, becoming its captain
// @Tags team
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TeamRequest true "team definition"
// @Success 201 {object} util.Response{data=model.Team}
// @Router /api/teams [post]
func (c *TeamController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.TeamService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, team)
}

// Members godoc
// @Summary Team roster
// @Tags team
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "team id"
// @Success 200 {object} util.Response{data=[]model.TeamMember}
// @Router /api/teams/{id}/members [get]
func (c *TeamController) Members(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	members, err := c.TeamService.GetMembers(id)
	if err != nil {
		c.writeTeamError(ctx, err)
		return
	}
	util.Success(ctx, members)
}

// Join godoc
// @Summary Join a public team
// @Tags team
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "team id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teams/{id}/join [post]
func (c *TeamController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	if err := c.TeamService.Join(claims.UserID, id); err != nil {
		c.writeTeamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Leave godoc
// @Summary Leave a team
// @Tags team
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "team id"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teams/{id}/leave [post]
func (c *TeamController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	if err := c.TeamService.Leave(claims.UserID, id); err != nil {
		c.writeTeamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a team (captain only)
// @Tags team
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "team id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/teams/{id} [delete]
func (c *TeamController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	if err := c.TeamService.Delete(claims.UserID, id); err != nil {
		c.writeTeamError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TeamController) writeTeamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTeamNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrTeamFull),
		errors.Is(err, util.ErrTeamPrivate),
		errors.Is(err, util.ErrAlreadyTeamMember),
		errors.Is(err, util.ErrNotTeamMember),
		errors.Is(err, util.ErrCaptainCannotLeave):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
