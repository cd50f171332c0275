package routes

import (
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runReportRouter(secureGroup *echo.Group, ctrl *controllers.ReportController, logger *zap.Logger) {
	reports := secureGroup.Group("/reports", middleware.RequireAction(authz.ReportsView, logger))
	reports.GET("/summary", ctrl.GetSummary)
	reports.GET("/requests.xlsx", ctrl.ExportRequests)
}
