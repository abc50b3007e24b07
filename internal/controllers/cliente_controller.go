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

type ClienteController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewClienteController(db *gorm.DB, p Authorizer) *ClienteController {
	return &ClienteController{DB: db, Policy: p}
}

type updateClienteInput struct {
	NombreCompleto *string  `json:"nombre_completo"`
	Telefono       *string  `json:"telefono"`
	NombreUsuario  *string  `json:"nombre_usuario"`
	Ciudad         *string  `json:"ciudad"`
	CodigoPostal   *string  `json:"codigo_postal"`
	Ingreso        *float64 `json:"ingreso"`
	Estado         *string  `json:"estado"`
}

func (ct *ClienteController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityCliente, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ct.DB.WithContext(c.Request.Context()).Create(&cliente).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el cliente: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cliente)
}

func (ct *ClienteController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityCliente, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var clientes []models.Cliente
	q := ct.DB.WithContext(c.Request.Context()).
		Preload("Sesiones").
		Preload("Valoraciones")
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Cliente{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&clientes).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

func (ct *ClienteController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityCliente, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var cliente models.Cliente
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Sesiones").
		Preload("Valoraciones").
		First(&cliente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (ct *ClienteController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityCliente, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updateClienteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cliente models.Cliente
	if err := ct.DB.WithContext(c.Request.Context()).First(&cliente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
			return
		}
		storageError(c, err)
		return
	}

	if input.NombreCompleto != nil {
		cliente.NombreCompleto = *input.NombreCompleto
	}
	if input.Telefono != nil {
		cliente.Telefono = *input.Telefono
	}
	if input.NombreUsuario != nil {
		cliente.NombreUsuario = *input.NombreUsuario
	}
	if input.Ciudad != nil {
		cliente.Ciudad = *input.Ciudad
	}
	if input.CodigoPostal != nil {
		cliente.CodigoPostal = *input.CodigoPostal
	}
	if input.Ingreso != nil {
		cliente.Ingreso = *input.Ingreso
	}
	if input.Estado != nil {
		cliente.Estado = *input.Estado
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&cliente).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (ct *ClienteController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityCliente, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Cliente{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminado"})
}
