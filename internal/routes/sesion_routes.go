package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func SesionRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.SesionController) {
	sesiones := r.Group("/sesiones")
	sesiones.Use(requireAuth)
	{
		sesiones.POST("/", ct.Create)
		sesiones.GET("/", ct.List)
		sesiones.GET("/profesional/:id", ct.ListByProfesional)
		sesiones.GET("/:id", ct.Get)
		sesiones.PUT("/:id", ct.Update)
		sesiones.DELETE("/:id", ct.Delete)
	}
}
