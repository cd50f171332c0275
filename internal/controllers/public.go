package controllers

import (
	"net/http"
	"time"

	"gearguard/internal/services"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/qrcode"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PublicController serves the unauthenticated QR scan surface.
type PublicController struct {
	baseController
	equipmentService services.EquipmentServiceInterface
	qr               *qrcode.Generator
}

func NewPublicController(
	equipmentService services.EquipmentServiceInterface,
	qr *qrcode.Generator,
	logger *zap.Logger,
	timeout time.Duration,
) *PublicController {
	return &PublicController{
		baseController:   newBaseController(logger, timeout),
		equipmentService: equipmentService,
		qr:               qr,
	}
}

func (c *PublicController) GetEquipment(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.FindPublicEquipment(reqCtx, ctx.Param("id"))
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, item, http.StatusOK)
}

// GetEquipmentQR renders a PNG for an existing item. mode defaults to link.
func (c *PublicController) GetEquipmentQR(ctx echo.Context) error {
	mode := constants.QRMode(ctx.QueryParam("mode"))
	if mode == "" {
		mode = constants.QRModeLink
	}
	if !mode.IsValid() {
		return c.fail(ctx, apperrors.NewBadRequestError("mode must be 'link' or 'json'"))
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	item, err := c.equipmentService.FindPublicEquipment(reqCtx, ctx.Param("id"))
	if err != nil {
		return c.fail(ctx, err)
	}

	png, err := c.qr.PNG(item.ID, mode)
	if err != nil {
		return c.fail(ctx, err)
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}
