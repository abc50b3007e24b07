package models

import "time"

// Roles reconocidos por la plataforma.
const (
	RolUsuario       = "usuario"
	RolProfesionista = "profesionista"
	RolAdministrador = "administrador"
)

type Usuario struct {
	ID                uint       `gorm:"primaryKey;column:id_usuario" json:"id_usuario"`
	Email             string     `gorm:"unique;not null" json:"email"`
	Nombre            string     `gorm:"not null" json:"nombre"`
	Password          string     `json:"-"` // vacio para cuentas federadas (Cognito)
	Rol               string     `gorm:"default:usuario" json:"rol"`
	EmailVerificado   bool       `gorm:"column:email_verificado;default:false" json:"email_verificado"`
	TokenVerificacion string     `gorm:"column:token_verificacion" json:"-"`
	FechaVerificacion *time.Time `gorm:"column:fecha_verificacion" json:"fecha_verificacion,omitempty"`
	Activo            bool       `gorm:"default:true" json:"activo"`
	FechaCreacion     time.Time  `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
	UltimoAcceso      *time.Time `gorm:"column:ultimo_acceso" json:"ultimo_acceso,omitempty"`

	// Proyecciones por cuenta: a lo sumo un Cliente y un Profesional.
	Cliente     *Cliente     `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cliente,omitempty"`
	Profesional *Profesional `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profesional,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }
