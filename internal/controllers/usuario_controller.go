package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"naxine_api/internal/middleware"
	"naxine_api/internal/models"
	"naxine_api/internal/policy"
	"naxine_api/internal/store"
)

type UsuarioController struct {
	DB       *gorm.DB
	Policy   Authorizer
	Usuarios *store.Usuarios
}

func NewUsuarioController(db *gorm.DB, p Authorizer, usuarios *store.Usuarios) *UsuarioController {
	return &UsuarioController{DB: db, Policy: p, Usuarios: usuarios}
}

// updateUsuarioInput lists the account fields an administrator may change.
// Password, verification token and federation id are deliberately absent.
type updateUsuarioInput struct {
	Nombre *string `json:"nombre"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Rol    *string `json:"rol"`
	Activo *bool   `json:"activo"`
}

func (ct *UsuarioController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityUsuario, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var usuarios []models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		Order("fecha_creacion DESC").
		Find(&usuarios).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (ct *UsuarioController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityUsuario, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var usuario models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (ct *UsuarioController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityUsuario, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updateUsuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rol != nil {
		switch *input.Rol {
		case models.RolUsuario, models.RolProfesionista, models.RolAdministrador:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rol inválido"})
			return
		}
	}

	var usuario models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).First(&usuario, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		storageError(c, err)
		return
	}

	if input.Nombre != nil {
		usuario.Nombre = *input.Nombre
	}
	if input.Email != nil {
		usuario.Email = *input.Email
	}
	if input.Rol != nil {
		usuario.Rol = *input.Rol
	}
	if input.Activo != nil {
		usuario.Activo = *input.Activo
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&usuario).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario actualizado exitosamente", "usuario": usuario})
}

func (ct *UsuarioController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityUsuario, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	// the administrator-count check runs inside the delete transaction
	if err := ct.Usuarios.DeleteGuarded(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrLastAdministrator):
			abortDecision(c, policy.Decision{Effect: policy.Deny, Reason: policy.ReasonLastAdministrator})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		default:
			storageError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}
