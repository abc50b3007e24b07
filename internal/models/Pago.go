package models

import "time"

// Estados posibles de un pago.
const (
	EstadoPagoPendiente  = "pendiente"
	EstadoPagoCompletado = "completado"
	EstadoPagoCancelado  = "cancelado"
)

// Pago registra una liquidacion hacia un profesional.
type Pago struct {
	ID             uint      `gorm:"primaryKey;column:id_pago" json:"id_pago"`
	ProfesionalID  uint      `gorm:"column:id_profesional;index;not null" json:"id_profesional" binding:"required"`
	BalanceGeneral float64   `gorm:"column:balance_general" json:"balance_general"`
	Ventas         float64   `json:"ventas"`
	Comision       float64   `json:"comision"`
	Fecha          time.Time `gorm:"autoCreateTime" json:"fecha"`
	Especialidad   string    `json:"especialidad"`
	Estado         string    `gorm:"default:pendiente" json:"estado"`
	Accion         string    `json:"accion"`

	Profesional *Profesional `gorm:"foreignKey:ProfesionalID" json:"profesional,omitempty"`
}

func (Pago) TableName() string { return "pagos" }
