package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"naxine_api/internal/middleware"
	"naxine_api/internal/models"
	"naxine_api/internal/policy"
)

type SesionController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewSesionController(db *gorm.DB, p Authorizer) *SesionController {
	return &SesionController{DB: db, Policy: p}
}

type updateSesionInput struct {
	Fecha      *string `json:"fecha"`
	Estado     *string `json:"estado"`
	Acciones   *string `json:"acciones"`
	Producto   *string `json:"producto"`
	MetodoPago *string `json:"metodo_pago"`
}

func (ct *SesionController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var sesion models.Sesion
	if err := c.ShouldBindJSON(&sesion); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if sesion.NumeroPedido == "" {
		sesion.NumeroPedido = uuid.NewString()
	}
	if err := ct.DB.WithContext(c.Request.Context()).Create(&sesion).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear la sesión: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sesion)
}

func (ct *SesionController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var sesiones []models.Sesion
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Sesion{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&sesiones).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesiones)
}

// ListByProfesional filters sessions for one professional. The list scope
// still applies, so a professional asking about a colleague gets the
// intersection: nothing.
func (ct *SesionController) ListByProfesional(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var sesiones []models.Sesion
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		Where("id_profesional = ?", id).
		Order("fecha DESC")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Sesion{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&sesiones).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesiones)
}

func (ct *SesionController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var sesion models.Sesion
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		First(&sesion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesion)
}

func (ct *SesionController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updateSesionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Estado != nil {
		switch *input.Estado {
		case models.EstadoSesionPendiente, models.EstadoSesionCompletada, models.EstadoSesionCancelada:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Estado inválido"})
			return
		}
	}

	var sesion models.Sesion
	if err := ct.DB.WithContext(c.Request.Context()).First(&sesion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
			return
		}
		storageError(c, err)
		return
	}

	updates := map[string]any{}
	if input.Fecha != nil {
		updates["fecha"] = *input.Fecha
	}
	if input.Estado != nil {
		updates["estado"] = *input.Estado
	}
	if input.Acciones != nil {
		updates["acciones"] = *input.Acciones
	}
	if input.Producto != nil {
		updates["producto"] = *input.Producto
	}
	if input.MetodoPago != nil {
		updates["metodo_pago"] = *input.MetodoPago
	}
	if len(updates) > 0 {
		if err := ct.DB.WithContext(c.Request.Context()).Model(&sesion).Updates(updates).Error; err != nil {
			storageError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, sesion)
}

func (ct *SesionController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntitySesion, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Sesion{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sesión eliminada"})
}
