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

type AuthController struct {
	baseController
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger, timeout time.Duration) *AuthController {
	return &AuthController{
		baseController: newBaseController(logger, timeout),
		authService:    authService,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	token, err := c.authService.Login(reqCtx, payload)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, token, http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	me, err := c.authService.Me(reqCtx)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, me, http.StatusOK)
}
