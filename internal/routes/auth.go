package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api, secureGroup *echo.Group, ctrl *controllers.AuthController, limiter echo.MiddlewareFunc) {
	api.POST("/auth/login", ctrl.Login, limiter)
	secureGroup.GET("/auth/me", ctrl.Me)
	secureGroup.GET("/users/me", ctrl.Me)
}
