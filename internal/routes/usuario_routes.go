package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func UsuarioRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.UsuarioController) {
	usuarios := r.Group("/usuarios")
	usuarios.Use(requireAuth)
	{
		usuarios.GET("/", ct.List)
		usuarios.GET("/:id", ct.Get)
		usuarios.PUT("/:id", ct.Update)
		usuarios.DELETE("/:id", ct.Delete)
	}
}
