package models

// Profesional es la proyeccion de profesional de la salud de una cuenta.
type Profesional struct {
	ID                uint    `gorm:"primaryKey;column:id_profesional" json:"id_profesional"`
	UsuarioID         uint    `gorm:"column:id_usuario;uniqueIndex;not null" json:"id_usuario"`
	IDStripe          string  `gorm:"column:id_stripe" json:"id_stripe,omitempty"`
	NombreCompleto    string  `gorm:"column:nombre_completo;not null" json:"nombre_completo"`
	CorreoElectronico string  `gorm:"column:correo_electronico" json:"correo_electronico"`
	Telefono          string  `json:"telefono"`
	NumeroColegiado   string  `gorm:"column:numero_colegiado" json:"numero_colegiado"`
	Especialidad      string  `gorm:"not null" json:"especialidad" binding:"required"`
	Direccion         string  `json:"direccion"`
	Rating            float64 `gorm:"default:0" json:"rating"`
	Biografia         string  `json:"biografia"`
	FotoPerfil        string  `gorm:"column:foto_perfil" json:"foto_perfil"`
	Certificaciones   string  `json:"certificaciones"`
	Activo            bool    `gorm:"default:true" json:"activo"`

	Sesiones     []Sesion     `gorm:"foreignKey:ProfesionalID" json:"sesiones,omitempty"`
	Valoraciones []Valoracion `gorm:"foreignKey:ProfesionalID" json:"valoraciones,omitempty"`
	Pagos        []Pago       `gorm:"foreignKey:ProfesionalID" json:"pagos,omitempty"`
}

func (Profesional) TableName() string { return "profesionales" }
