package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func ValoracionRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.ValoracionController) {
	valoraciones := r.Group("/valoraciones")
	valoraciones.Use(requireAuth)
	{
		valoraciones.POST("/", ct.Create)
		valoraciones.GET("/", ct.List)
		valoraciones.GET("/profesional/:id", ct.ListByProfesional)
		valoraciones.GET("/:id", ct.Get)
		valoraciones.PUT("/:id", ct.Update)
		valoraciones.DELETE("/:id", ct.Delete)
	}
}
