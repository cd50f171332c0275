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

type UserController struct {
	baseController
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger, timeout time.Duration) *UserController {
	return &UserController{
		baseController: newBaseController(logger, timeout),
		userService:    userService,
	}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	users, err := c.userService.GetUsers(reqCtx)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, users, http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := c.bindAndValidate(ctx, &payload); err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	user, err := c.userService.CreateUser(reqCtx, payload)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	var payload dto.UpdateUserDTO
	rawBody, err := c.bindPatch(ctx, &payload)
	if err != nil {
		return c.fail(ctx, err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	user, err := c.userService.UpdateUser(reqCtx, ctx.Param("id"), payload, rawBody)
	if err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, user, http.StatusOK)
}
