package routes

import (
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runTeamRouter(secureGroup *echo.Group, ctrl *controllers.TeamController, logger *zap.Logger) {
	teams := secureGroup.Group("/teams")
	teams.GET("", ctrl.GetTeams)
	teams.GET("/:id", ctrl.FindTeam)
	teams.POST("", ctrl.CreateTeam, middleware.RequireAction(authz.TeamsCreate, logger))
	teams.PUT("/:id", ctrl.UpdateTeam, middleware.RequireAction(authz.TeamsUpdate, logger))
	teams.DELETE("/:id", ctrl.DeleteTeam, middleware.RequireAction(authz.TeamsDelete, logger))
}
