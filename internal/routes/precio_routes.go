package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func PrecioRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.PrecioController) {
	precios := r.Group("/precios")
	precios.Use(requireAuth)
	{
		precios.POST("/", ct.Create)
		precios.GET("/", ct.List)
		precios.GET("/:id", ct.Get)
		precios.PUT("/:id", ct.Update)
		precios.DELETE("/:id", ct.Delete)
	}
}
