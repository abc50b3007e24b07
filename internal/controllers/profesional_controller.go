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

type ProfesionalController struct {
	DB     *gorm.DB
	Policy Authorizer
}

func NewProfesionalController(db *gorm.DB, p Authorizer) *ProfesionalController {
	return &ProfesionalController{DB: db, Policy: p}
}

type updateProfesionalInput struct {
	NombreCompleto    *string  `json:"nombre_completo"`
	CorreoElectronico *string  `json:"correo_electronico" binding:"omitempty,email"`
	Telefono          *string  `json:"telefono"`
	NumeroColegiado   *string  `json:"numero_colegiado"`
	Especialidad      *string  `json:"especialidad"`
	Direccion         *string  `json:"direccion"`
	Biografia         *string  `json:"biografia"`
	FotoPerfil        *string  `json:"foto_perfil"`
	Certificaciones   *string  `json:"certificaciones"`
	Activo            *bool    `json:"activo"`
	IDStripe          *string  `json:"id_stripe"`
	Rating            *float64 `json:"rating"`
}

func (ct *ProfesionalController) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpCreate, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var profesional models.Profesional
	if err := c.ShouldBindJSON(&profesional); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ct.DB.WithContext(c.Request.Context()).Create(&profesional).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo crear el profesional: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profesional)
}

func (ct *ProfesionalController) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var profesionales []models.Profesional
	q := ct.DB.WithContext(c.Request.Context())
	if d.Effect == policy.AllowScoped {
		if d.Scope.Empty {
			c.JSON(http.StatusOK, []models.Profesional{})
			return
		}
		q = q.Where(d.Scope.Column+" = ?", d.Scope.Value)
	}
	if err := q.Find(&profesionales).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, profesionales)
}

// ListByEspecialidad is the public directory search; only active
// professionals are listed, regardless of role.
func (ct *ProfesionalController) ListByEspecialidad(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpList, p, 0)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var profesionales []models.Profesional
	if err := ct.DB.WithContext(c.Request.Context()).
		Where("especialidad = ? AND activo = ?", c.Param("especialidad"), true).
		Find(&profesionales).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, profesionales)
}

func (ct *ProfesionalController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpRead, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var profesional models.Profesional
	if err := ct.DB.WithContext(c.Request.Context()).First(&profesional, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profesional no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, profesional)
}

func (ct *ProfesionalController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpUpdate, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	var input updateProfesionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profesional models.Profesional
	if err := ct.DB.WithContext(c.Request.Context()).First(&profesional, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profesional no encontrado"})
			return
		}
		storageError(c, err)
		return
	}

	if input.NombreCompleto != nil {
		profesional.NombreCompleto = *input.NombreCompleto
	}
	if input.CorreoElectronico != nil {
		profesional.CorreoElectronico = *input.CorreoElectronico
	}
	if input.Telefono != nil {
		profesional.Telefono = *input.Telefono
	}
	if input.NumeroColegiado != nil {
		profesional.NumeroColegiado = *input.NumeroColegiado
	}
	if input.Especialidad != nil {
		profesional.Especialidad = *input.Especialidad
	}
	if input.Direccion != nil {
		profesional.Direccion = *input.Direccion
	}
	if input.Biografia != nil {
		profesional.Biografia = *input.Biografia
	}
	if input.FotoPerfil != nil {
		profesional.FotoPerfil = *input.FotoPerfil
	}
	if input.Certificaciones != nil {
		profesional.Certificaciones = *input.Certificaciones
	}
	if input.Activo != nil {
		profesional.Activo = *input.Activo
	}
	if input.IDStripe != nil {
		profesional.IDStripe = *input.IDStripe
	}
	if input.Rating != nil {
		profesional.Rating = *input.Rating
	}
	if err := ct.DB.WithContext(c.Request.Context()).Save(&profesional).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, profesional)
}

func (ct *ProfesionalController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := middleware.PrincipalFrom(c)
	d, err := ct.Policy.Authorize(c.Request.Context(), policy.EntityProfesional, policy.OpDelete, p, id)
	if err != nil {
		storageError(c, err)
		return
	}
	if d.Denied() {
		abortDecision(c, d)
		return
	}

	res := ct.DB.WithContext(c.Request.Context()).Delete(&models.Profesional{}, id)
	if res.Error != nil {
		storageError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profesional no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profesional eliminado"})
}
