package routes

import (
	"github.com/gin-gonic/gin"

	"naxine_api/internal/controllers"
)

func AuthRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, ct *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ct.Register)
		auth.POST("/login", ct.Login)
		auth.GET("/verify/:token", ct.VerifyEmail)
		auth.GET("/me", requireAuth, ct.Me)
	}
}
