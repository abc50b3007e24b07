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

type PrecioController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewPrecioController(db *gorm.DB, p Authorizer) *PrecioController {
	return &PrecioController{DB: db, Policy: p}
}

type updatePrecioInput struct {
	NumeroSesion    *int     `json:"numero_sesion"`
	NombrePaquete   *string  `json:"nombre_paquete"`
	Duracion        *string  `json:"duracion"`
	Modalidad       *string  `json:"modalidad"`
	Horario         *string  `json:"horario"`
	OrdenesTotales  *int     `json:"ordenes_totales"`
	IngresosTotales *float64 `json:"ingresos_totales"`
	DiasDisponibles *string  `json:"dias_disponibles"`
	HoraDesde       *string  `json:"hora_desde"`
	HoraHasta       *string  `json:"hora_hasta"`
}

func (ct *PrecioController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPrecio, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var precio models.Precio
	if err := c.ShouldBindJSON(&precio); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ct.DB.WithContext(c.Request.Context()).Create(&precio).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el precio: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, precio)
}

func (ct *PrecioController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPrecio, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var precios []models.Precio
	if err := ct.DB.WithContext(c.Request.Context()).Find(&precios).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, precios)
}

func (ct *PrecioController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPrecio, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var precio models.Precio
	if err := ct.DB.WithContext(c.Request.Context()).First(&precio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Precio no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, precio)
}

func (ct *PrecioController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPrecio, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updatePrecioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var precio models.Precio
	if err := ct.DB.WithContext(c.Request.Context()).First(&precio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Precio no encontrado"})
			return
		}
		storageError(c, err)
		return
	}

	if input.NumeroSesion != nil {
		precio.NumeroSesion = *input.NumeroSesion
	}
	if input.NombrePaquete != nil {
		precio.NombrePaquete = *input.NombrePaquete
	}
	if input.Duracion != nil {
		precio.Duracion = *input.Duracion
	}
	if input.Modalidad != nil {
		precio.Modalidad = *input.Modalidad
	}
	if input.Horario != nil {
		precio.Horario = *input.Horario
	}
	if input.OrdenesTotales != nil {
		precio.OrdenesTotales = *input.OrdenesTotales
	}
	if input.IngresosTotales != nil {
		precio.IngresosTotales = *input.IngresosTotales
	}
	if input.DiasDisponibles != nil {
		precio.DiasDisponibles = *input.DiasDisponibles
	}
	if input.HoraDesde != nil {
		precio.HoraDesde = *input.HoraDesde
	}
	if input.HoraHasta != nil {
		precio.HoraHasta = *input.HoraHasta
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&precio).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, precio)
}

func (ct *PrecioController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityPrecio, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Precio{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Precio no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Precio eliminado"})
}
