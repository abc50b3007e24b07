package models

import "time"

// Estados posibles de una sesion.
const (
	EstadoSesionPendiente  = "pendiente"
	EstadoSesionCompletada = "completada"
	EstadoSesionCancelada  = "cancelada"
)

// Sesion representa una cita entre un cliente y un profesional.
type Sesion struct {
	ID            uint      `gorm:"primaryKey;column:id_sesion" json:"id_sesion"`
	ClienteID     uint      `gorm:"column:id_cliente;index;not null" json:"id_cliente" binding:"required"`
	ProfesionalID uint      `gorm:"column:id_profesional;index;not null" json:"id_profesional" binding:"required"`
	NumeroPedido  string    `gorm:"column:numero_pedido;not null" json:"numero_pedido"`
	Fecha         time.Time `json:"fecha" binding:"required"`
	Estado        string    `gorm:"default:pendiente" json:"estado"`
	Acciones      string    `json:"acciones"`
	Producto      string    `json:"producto"`
	MetodoPago    string    `gorm:"column:metodo_pago" json:"metodo_pago"`

	Cliente     *Cliente     `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Profesional *Profesional `gorm:"foreignKey:ProfesionalID" json:"profesional,omitempty"`
}

func (Sesion) TableName() string { return "sesiones" }
