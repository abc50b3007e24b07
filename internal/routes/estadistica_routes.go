package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func EstadisticaRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.EstadisticaController) {
	estadisticas := r.Group("/estadisticas")
	estadisticas.Use(requireAuth)
	{
		estadisticas.GET("/overview", ct.Overview)
	}
}
