package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// baseController carries what every handler needs: a logger and the bound
// on database work per request.
type baseController struct {
	logger  *zap.Logger
	timeout time.Duration
}

func newBaseController(logger *zap.Logger, timeout time.Duration) baseController {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return baseController{logger: logger, timeout: timeout}
}

func (b baseController) requestContext(ctx echo.Context) (context.Context, context.CancelFunc) {
	return utils.ContextWithTimeout(ctx, b.timeout)
}

func (b baseController) fail(ctx echo.Context, err error) error {
	return utils.ErrorResponse(ctx, err, b.logger)
}

// bindAndValidate binds the JSON body into payload and runs the validator.
func (b baseController) bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Invalid JSON body", err, nil)
	}
	return ctx.Validate(payload)
}

// bindPatch is bindAndValidate for partial updates; it also returns the raw
// body so the service can tell absent fields from null ones.
func (b baseController) bindPatch(ctx echo.Context, payload interface{}) ([]byte, error) {
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Unable to read request body", err, nil)
	}
	ctx.Request().Body = io.NopCloser(bytes.NewBuffer(rawBody))

	if err := b.bindAndValidate(ctx, payload); err != nil {
		return nil, err
	}
	return rawBody, nil
}
