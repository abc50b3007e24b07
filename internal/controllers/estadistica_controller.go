package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"naxine_api/internal/middleware"
	"naxine_api/internal/models"
	"naxine_api/internal/policy"
)

type EstadisticaController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewEstadisticaController(db *gorm.DB, p Authorizer) *EstadisticaController {
	return &EstadisticaController{DB: db, Policy: p}
}

// Overview returns the platform counters.
func (ct *EstadisticaController) Overview(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityEstadistica, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	db := ct.DB.WithContext(c.Request.Context())
	var usuarios, clientes, profesionales, sesiones, pendientes, completadas int64
	counts := []struct {
		model any
		where []any
		out   *int64
	}{
		{&models.Usuario{}, nil, &usuarios},
		{&models.Cliente{}, nil, &clientes},
		{&models.Profesional{}, nil, &profesionales},
		{&models.Sesion{}, nil, &sesiones},
		{&models.Sesion{}, []any{"estado = ?", models.EstadoSesionPendiente}, &pendientes},
		{&models.Sesion{}, []any{"estado = ?", models.EstadoSesionCompletada}, &completadas},
	}
	for _, cnt := range counts {
		q := db.Model(cnt.model)
		if cnt.where != nil {
			q = q.Where(cnt.where[0], cnt.where[1:]...)
		}
		if err := q.Count(cnt.out).Error; err != nil {
			storageError(c, err)
			return
		}
	}

	var ratingPromedio float64
	if err := db.Model(&models.Valoracion{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&ratingPromedio).Error; err != nil {
		storageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuarios":             usuarios,
		"clientes":             clientes,
		"profesionales":        profesionales,
		"sesiones":             sesiones,
		"sesiones_pendientes":  pendientes,
		"sesiones_completadas": completadas,
		"rating_promedio":      ratingPromedio,
	})
}
