package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"naxine_api/internal/auth"
	"naxine_api/internal/mailer"
	"naxine_api/internal/middleware"
	"naxine_api/internal/models"
	"naxine_api/internal/store"
)

type AuthController struct {
	DB       *gorm.DB
	Tokens   *auth.LocalVerifier
	Mailer   *mailer.Mailer
	Usuarios *store.Usuarios
}

func NewAuthController(db *gorm.DB, tokens *auth.LocalVerifier, m *mailer.Mailer, usuarios *store.Usuarios) *AuthController {
	return &AuthController{DB: db, Tokens: tokens, Mailer: m, Usuarios: usuarios}
}

type registerInput struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Rol      string `json:"rol"`
}

// Register creates a local account. Administrator accounts are never
// self-service; they are promoted through the user administration API.
func (ct *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rol, err := validateAndNormalizeRol(input.Rol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
		return
	}

	usuario := models.Usuario{
		Nombre:            input.Nombre,
		Email:             input.Email,
		Password:          string(hash),
		Rol:               rol,
		Activo:            true,
		TokenVerificacion: uuid.NewString(),
	}
	err = ct.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&usuario).Error; err != nil {
			return err
		}
		// regular accounts get their client profile immediately so they can
		// book sessions without a second onboarding step
		if rol == models.RolUsuario {
			usuario.Cliente = &models.Cliente{
				UsuarioID:      usuario.ID,
				NombreCompleto: usuario.Nombre,
				Estado:         models.EstadoClienteActivo,
			}
			return tx.Create(usuario.Cliente).Error
		}
		return nil
	})
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "El correo electrónico ya está registrado"})
			return
		}
		storageError(c, err)
		return
	}

	token, err := ct.Tokens.GenerateToken(&usuario)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}

	// delivery never blocks registration
	go ct.Mailer.SendBienvenida(usuario.Email, usuario.Nombre)
	go ct.Mailer.SendTokenVerificacion(usuario.Email, usuario.Nombre, usuario.TokenVerificacion)

	c.JSON(http.StatusCreated, gin.H{"token": token, "usuario": usuario})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ct *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).
		Where("email = ?", input.Email).
		Preload("Cliente").
		Preload("Profesional").
		First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
			return
		}
		storageError(c, err)
		return
	}

	// federated accounts have no local credential
	if usuario.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Esta cuenta usa inicio de sesión externo"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}
	if !usuario.Activo {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cuenta desactivada"})
		return
	}

	token, err := ct.Tokens.GenerateToken(&usuario)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}

	now := time.Now()
	usuario.UltimoAcceso = &now
	ct.DB.WithContext(c.Request.Context()).
		Model(&models.Usuario{}).
		Where("id_usuario = ?", usuario.ID).
		Update("ultimo_acceso", &now)

	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": usuario})
}

// VerifyEmail confirms the address behind a verification token.
func (ct *AuthController) VerifyEmail(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token de verificación requerido"})
		return
	}

	var usuario models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).
		Where("token_verificacion = ?", token).
		First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Token de verificación inválido"})
			return
		}
		storageError(c, err)
		return
	}

	now := time.Now()
	usuario.EmailVerificado = true
	usuario.FechaVerificacion = &now
	usuario.TokenVerificacion = ""
	if err := ct.DB.WithContext(c.Request.Context()).Save(&usuario).Error; err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Correo verificado exitosamente"})
}

// Me returns the authenticated account with its owned projections.
func (ct *AuthController) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil || p.UsuarioID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Se requiere un token de autenticación"})
		return
	}

	var usuario models.Usuario
	if err := ct.DB.WithContext(c.Request.Context()).
		Preload("Cliente").
		Preload("Profesional").
		First(&usuario, p.UsuarioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func validateAndNormalizeRol(rolInput string) (string, error) {
	rol := strings.ToLower(strings.TrimSpace(rolInput))
	if rol == "" {
		rol = models.RolUsuario
	}
	switch rol {
	case models.RolUsuario, models.RolProfesionista:
		return rol, nil
	default:
		return "", errors.New("rol inválido")
	}
}
