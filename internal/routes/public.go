package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runPublicRouter(api *echo.Group, ctrl *controllers.PublicController, limiter echo.MiddlewareFunc) {
	public := api.Group("/public", limiter)
	public.GET("/equipment/:id", ctrl.GetEquipment)
	public.GET("/equipment/:id/qr", ctrl.GetEquipmentQR)
}
