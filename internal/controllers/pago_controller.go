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

type PagoController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewPagoController(db *gorm.DB, p Authorizer) *PagoController {
	return &PagoController{DB: db, Policy: p}
}

type updatePagoInput struct {
	BalanceGeneral *float64 `json:"balance_general"`
	Ventas         *float64 `json:"ventas"`
	Comision       *float64 `json:"comision"`
	Especialidad   *string  `json:"especialidad"`
	Estado         *string  `json:"estado"`
	Accion         *string  `json:"accion"`
}

func (ct *PagoController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var pago models.Pago
	if err := c.ShouldBindJSON(&pago); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ct.DB.WithContext(c.Request.Context()).Create(&pago).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el pago: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pago)
}

func (ct *PagoController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var pagos []models.Pago
	q := ct.DB.WithContext(c.Request.Context()).Preload("Profesional")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Pago{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&pagos).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}

// ListByProfesional narrows the payment list to one professional; the
// caller's own scope still applies on top.
func (ct *PagoController) ListByProfesional(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var pagos []models.Pago
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Profesional").
		Where("id_profesional = ?", id).
		Order("fecha DESC")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Pago{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&pagos).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}

func (ct *PagoController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var pago models.Pago
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Profesional").
		First(&pago, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pago)
}

func (ct *PagoController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updatePagoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pago models.Pago
	if err := ct.DB.WithContext(c.Request.Context()).First(&pago, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
			return
		}
		storageError(c, err)
		return
	}

	if input.BalanceGeneral != nil {
		pago.BalanceGeneral = *input.BalanceGeneral
	}
	if input.Ventas != nil {
		pago.Ventas = *input.Ventas
	}
	if input.Comision != nil {
		pago.Comision = *input.Comision
	}
	if input.Especialidad != nil {
		pago.Especialidad = *input.Especialidad
	}
	if input.Estado != nil {
		pago.Estado = *input.Estado
	}
	if input.Accion != nil {
		pago.Accion = *input.Accion
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&pago).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pago)
}

func (ct *PagoController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPago, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Pago{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}
