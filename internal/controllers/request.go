package controllers

import (
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RequestController struct {
	baseController
	requestService services.RequestServiceInterface
}

func NewRequestController(requestService services.RequestServiceInterface, logger *zap.Logger, timeout time.Duration) *RequestController {
	return &RequestController{
		baseController: newBaseController(logger, timeout),
		requestService: requestService,
	}
}

func requestFilterFromQuery(ctx echo.Context) types.RequestFilter {
	return types.RequestFilter{
		EquipmentID: ctx.QueryParam("equipmentId"),
		Type:        ctx.QueryParam("type"),
		TeamID:      ctx.QueryParam("teamId"),
		Stage:       ctx.QueryParam("stage"),
		Search:      ctx.QueryParam("search"),
	}
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	items, err := c.requestService.GetRequests(reqCtx, requestFilterFromQuery(ctx))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, items, http.StatusOK)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.requestService.FindRequest(reqCtx, ctx.Param("id"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.requestService.CreateRequest(reqCtx, payload)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	var payload dto.UpdateRequestDTO
	rawBody, err := c.bindPatch(ctx, &payload)
	if err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.requestService.UpdateRequest(reqCtx, ctx.Param("id"), payload, rawBody)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.requestService.DeleteRequest(reqCtx, ctx.Param("id")); err != nil {
		return c.fail(ctx, err)
	}
	return utils.OkResponse(ctx)
}
