package controllers

import (
	"context"
	"net/http"
	"time"

	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	baseController
	db Pinger
}

func NewHealthController(db Pinger, logger *zap.Logger, timeout time.Duration) *HealthController {
	return &HealthController{baseController: newBaseController(logger, timeout), db: db}
}

func (c *HealthController) Health(ctx echo.Context) error {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.db.Ping(reqCtx); err != nil {
		return c.fail(ctx, apperrors.NewHttpError(http.StatusServiceUnavailable, "Database unavailable", err, nil))
	}
	return utils.SuccessResponse(ctx, map[string]string{"status": "ok"}, http.StatusOK)
}
