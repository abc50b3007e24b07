package models

import "time"

// Precio describe un paquete de sesiones con su tarifa y contadores
// agregados de ordenes e ingresos.
type Precio struct {
	ID              uint       `gorm:"primaryKey;column:id_precio" json:"id_precio"`
	NumeroSesion    int        `gorm:"column:numero_sesion;not null" json:"numero_sesion"`
	NombrePaquete   string     `gorm:"column:nombre_paquete;not null" json:"nombre_paquete" binding:"required"`
	Duracion        string     `json:"duracion"`
	Modalidad       string     `json:"modalidad"`
	Horario         string     `json:"horario"`
	OrdenesTotales  int        `gorm:"column:ordenes_totales;default:0" json:"ordenes_totales"`
	IngresosTotales float64    `gorm:"column:ingresos_totales;default:0" json:"ingresos_totales"`
	Fecha           *time.Time `json:"fecha,omitempty"`
	DiasDisponibles string     `gorm:"column:dias_disponibles" json:"dias_disponibles"`
	HoraDesde       string     `gorm:"column:hora_desde" json:"hora_desde"`
	HoraHasta       string     `gorm:"column:hora_hasta" json:"hora_hasta"`
}

func (Precio) TableName() string { return "precios" }
