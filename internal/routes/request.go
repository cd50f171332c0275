package routes

import (
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Stage-specific rules (scrap) are enforced by the service, not here.
func runRequestRouter(secureGroup *echo.Group, ctrl *controllers.RequestController, logger *zap.Logger) {
	requests := secureGroup.Group("/requests")
	requests.GET("", ctrl.GetRequests, middleware.RequireAction(authz.RequestsView, logger))
	requests.GET("/:id", ctrl.FindRequest, middleware.RequireAction(authz.RequestsView, logger))
	requests.POST("", ctrl.CreateRequest, middleware.RequireAction(authz.RequestsCreate, logger))
	requests.PUT("/:id", ctrl.UpdateRequest, middleware.RequireAction(authz.RequestsUpdate, logger))
	requests.DELETE("/:id", ctrl.DeleteRequest, middleware.RequireAction(authz.RequestsDelete, logger))
}
