package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"naxine_api/internal/middleware"
	"naxine_api/internal/models"
	"naxine_api/internal/policy"
)

type ValoracionController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewValoracionController(db *gorm.DB, p Authorizer) *ValoracionController {
	return &ValoracionController{DB: db, Policy: p}
}

type updateValoracionInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Mensaje *string `json:"mensaje"`
	Estado  *string `json:"estado"`
}

func (ct *ValoracionController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo los clientes pueden crear valoraciones"})
		return
	}

	var valoracion models.Valoracion
	if err := c.ShouldBindJSON(&valoracion); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The client reference always comes from the authenticated principal's
	// owned Cliente, never from the request body. Administrators carry no
	// projection and must name the client explicitly.
	if d.Effect == policy.AllowScoped {
		valoracion.ClienteID = d.Scope.Value.(uint)
	} else if valoracion.ClienteID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_cliente es requerido"})
		return
	}

	if err := ct.DB.WithContext(c.Request.Context()).Create(&valoracion).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear la valoración: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, valoracion)
}

func (ct *ValoracionController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var valoraciones []models.Valoracion
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Valoracion{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&valoraciones).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, valoraciones)
}

// ListByProfesional lists a professional's ratings, newest first. The
// caller's list scope still applies on top of the filter.
func (ct *ValoracionController) ListByProfesional(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var valoraciones []models.Valoracion
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		Where("id_profesional = ?", id).
		Order("fecha DESC")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Valoracion{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&valoraciones).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, valoraciones)
}

func (ct *ValoracionController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var valoracion models.Valoracion
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		First(&valoracion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Valoración no encontrada"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, valoracion)
}

func (ct *ValoracionController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updateValoracionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Estado != nil {
		switch *input.Estado {
		case models.EstadoValoracionPendiente, models.EstadoValoracionAprobada, models.EstadoValoracionRechazada:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Estado inválido"})
			return
		}
	}

	var valoracion models.Valoracion
	if err := ct.DB.WithContext(c.Request.Context()).First(&valoracion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Valoración no encontrada"})
			return
		}
		storageError(c, err)
		return
	}

	if input.Rating != nil {
		valoracion.Rating = *input.Rating
	}
	if input.Mensaje != nil {
		valoracion.Mensaje = *input.Mensaje
	}
	if input.Estado != nil {
		valoracion.Estado = *input.Estado
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&valoracion).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, valoracion)
}

func (ct *ValoracionController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityValoracion, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Valoracion{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Valoración no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Valoración eliminada"})
}
