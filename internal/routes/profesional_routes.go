package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func ProfesionalRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.ProfesionalController) {
	profesionales := r.Group("/profesionales")
	profesionales.Use(requireAuth)
	{
		profesionales.POST("/", ct.Create)
		profesionales.GET("/", ct.List)
		profesionales.GET("/especialidad/:especialidad", ct.ListByEspecialidad)
		profesionales.GET("/:id", ct.Get)
		profesionales.PUT("/:id", ct.Update)
		profesionales.DELETE("/:id", ct.Delete)
	}
}
