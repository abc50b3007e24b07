package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func ClienteRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.ClienteController) {
	clientes := r.Group("/clientes")
	clientes.Use(requireAuth)
	{
		clientes.POST("/", ct.Create)
		clientes.GET("/", ct.List)
		clientes.GET("/:id", ct.Get)
		clientes.PUT("/:id", ct.Update)
		clientes.DELETE("/:id", ct.Delete)
	}
}
