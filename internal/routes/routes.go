package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"naxine_api/internal/auth"
	"naxine_api/internal/controllers"
	"naxine_api/internal/mailer"
	"naxine_api/internal/middleware"
	"naxine_api/internal/store"
)

// Deps carries the wired collaborators each controller needs. Everything
// is constructed once in main and injected here.
type Deps struct {
	DB       *gorm.DB
	Gate     *auth.Gate
	Policy   controllers.Authorizer
	Tokens   *auth.LocalVerifier
	Mailer   *mailer.Mailer
	Usuarios *store.Usuarios
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	requireAuth := middleware.RequireAuth(d.Gate)

	AuthRoutes(r, requireAuth, controllers.NewAuthController(d.DB, d.Tokens, d.Mailer, d.Usuarios))
	UsuarioRoutes(r, requireAuth, controllers.NewUsuarioController(d.DB, d.Policy, d.Usuarios))
	ClienteRoutes(r, requireAuth, controllers.NewClienteController(d.DB, d.Policy))
	ProfesionalRoutes(r, requireAuth, controllers.NewProfesionalController(d.DB, d.Policy))
	SesionRoutes(r, requireAuth, controllers.NewSesionController(d.DB, d.Policy))
	ValoracionRoutes(r, requireAuth, controllers.NewValoracionController(d.DB, d.Policy))
	PagoRoutes(r, requireAuth, controllers.NewPagoController(d.DB, d.Policy))
	PrecioRoutes(r, requireAuth, controllers.NewPrecioController(d.DB, d.Policy))
	EstadisticaRoutes(r, requireAuth, controllers.NewEstadisticaController(d.DB, d.Policy))

	return r
}
