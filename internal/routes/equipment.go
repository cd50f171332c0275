package routes

import (
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(secureGroup *echo.Group, ctrl *controllers.EquipmentController, logger *zap.Logger) {
	equipment := secureGroup.Group("/equipment")
	equipment.GET("", ctrl.GetEquipments)
	equipment.GET("/:id", ctrl.FindEquipment)
	equipment.POST("", ctrl.CreateEquipment, middleware.RequireAction(authz.EquipmentCreate, logger))
	equipment.PUT("/:id", ctrl.UpdateEquipment, middleware.RequireAction(authz.EquipmentUpdate, logger))
	equipment.DELETE("/:id", ctrl.DeleteEquipment, middleware.RequireAction(authz.EquipmentDelete, logger))
	equipment.POST("/:id/scrap", ctrl.ScrapEquipment, middleware.RequireAction(authz.EquipmentScrap, logger))
}
