package router

import (
	"github.com/labstack/echo/v4"

	planctrl "prodplan/pkg/plan/controller"
)

func New(
	e *echo.Echo,
	refCtrl interface {
		Data(echo.Context) error
		CreateEmployee(echo.Context) error
		DeleteEmployee(echo.Context) error
	},
	planCtrl planctrl.PlanController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.GET("/data", refCtrl.Data)
	e.POST("/employees", refCtrl.CreateEmployee)
	e.DELETE("/employees/:id", refCtrl.DeleteEmployee)

	e.GET("/plan", planCtrl.List)
	e.POST("/plan", planCtrl.Create)
	e.PUT("/plan/:id", planCtrl.Update)
	e.DELETE("/plan/:id", planCtrl.Delete)
	e.GET("/default-goal", planCtrl.DefaultGoal)
	return e
}
