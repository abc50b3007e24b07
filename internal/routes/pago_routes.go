package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func PagoRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.PagoController) {
	pagos := r.Group("/pagos")
	pagos.Use(requireAuth)
	{
		pagos.POST("/", ct.Create)
		pagos.GET("/", ct.List)
		pagos.GET("/profesional/:id", ct.ListByProfesional)
		pagos.GET("/:id", ct.Get)
		pagos.PUT("/:id", ct.Update)
		pagos.DELETE("/:id", ct.Delete)
	}
}
