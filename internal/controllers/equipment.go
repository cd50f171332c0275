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

type EquipmentController struct {
	baseController
	equipmentService services.EquipmentServiceInterface
}

func NewEquipmentController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger, timeout time.Duration) *EquipmentController {
	return &EquipmentController{
		baseController:   newBaseController(logger, timeout),
		equipmentService: equipmentService,
	}
}

func equipmentFilterFromQuery(ctx echo.Context) types.EquipmentFilter {
	return types.EquipmentFilter{
		Search:     ctx.QueryParam("search"),
		Category:   ctx.QueryParam("category"),
		Department: ctx.QueryParam("department"),
		Status:     ctx.QueryParam("status"),
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	items, err := c.equipmentService.GetEquipments(reqCtx, equipmentFilterFromQuery(ctx))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, items, http.StatusOK)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.FindEquipment(reqCtx, ctx.Param("id"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.CreateEquipment(reqCtx, payload)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	var payload dto.UpdateEquipmentDTO
	rawBody, err := c.bindPatch(ctx, &payload)
	if err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.UpdateEquipment(reqCtx, ctx.Param("id"), payload, rawBody)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

func (c *EquipmentController) ScrapEquipment(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.ScrapEquipment(reqCtx, ctx.Param("id"), ctx.QueryParam("reason"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.equipmentService.DeleteEquipment(reqCtx, ctx.Param("id")); err != nil {
		return c.fail(ctx, err)
	}
	return utils.OkResponse(ctx)
}
