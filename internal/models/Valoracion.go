package models

import "time"

// Estados posibles de una valoracion.
const (
	EstadoValoracionPendiente = "pendiente"
	EstadoValoracionAprobada  = "aprobada"
	EstadoValoracionRechazada = "rechazada"
)

// Valoracion es la calificacion que un cliente deja sobre un profesional.
// ClienteID siempre se fija desde el perfil del cliente autenticado, nunca
// desde el cuerpo de la peticion.
type Valoracion struct {
	ID            uint      `gorm:"primaryKey;column:id_valoracion" json:"id_valoracion"`
	ClienteID     uint      `gorm:"column:id_cliente;index;not null" json:"id_cliente"`
	ProfesionalID uint      `gorm:"column:id_profesional;index;not null" json:"id_profesional" binding:"required"`
	Producto      string    `gorm:"not null" json:"producto"`
	Rating        int       `gorm:"not null" json:"rating" binding:"required,min=1,max=5"`
	Mensaje       string    `json:"mensaje"`
	Fecha         time.Time `gorm:"autoCreateTime" json:"fecha"`
	Estado        string    `gorm:"default:pendiente" json:"estado"`

	Cliente     *Cliente     `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Profesional *Profesional `gorm:"foreignKey:ProfesionalID" json:"profesional,omitempty"`
}

func (Valoracion) TableName() string { return "valoraciones" }
