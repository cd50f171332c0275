package routes

import (
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(secureGroup *echo.Group, ctrl *controllers.UserController, logger *zap.Logger) {
	users := secureGroup.Group("/users")
	users.GET("", ctrl.GetUsers, middleware.RequireAction(authz.UsersList, logger))
	users.POST("", ctrl.CreateUser, middleware.RequireAction(authz.UsersCreate, logger))
	users.PUT("/:id", ctrl.UpdateUser, middleware.RequireAction(authz.UsersUpdate, logger))
}
