package controllers

import (
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TeamController struct {
	baseController
	teamService services.TeamServiceInterface
}

func NewTeamController(teamService services.TeamServiceInterface, logger *zap.Logger, timeout time.Duration) *TeamController {
	return &TeamController{
		baseController: newBaseController(logger, timeout),
		teamService:    teamService,
	}
}

func (c *TeamController) GetTeams(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	teams, err := c.teamService.GetTeams(reqCtx)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, teams, http.StatusOK)
}

func (c *TeamController) FindTeam(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	team, err := c.teamService.FindTeam(reqCtx, ctx.Param("id"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, team, http.StatusOK)
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var payload dto.CreateTeamDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	team, err := c.teamService.CreateTeam(reqCtx, payload)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, team, http.StatusCreated)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	var payload dto.UpdateTeamDTO
	rawBody, err := c.bindPatch(ctx, &payload)
	if err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	team, err := c.teamService.UpdateTeam(reqCtx, ctx.Param("id"), payload, rawBody)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, team, http.StatusOK)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.teamService.DeleteTeam(reqCtx, ctx.Param("id")); err != nil {
		return c.fail(ctx, err)
	}
	return utils.OkResponse(ctx)
}
