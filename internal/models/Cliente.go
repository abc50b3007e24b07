package models

// Estados posibles de un cliente.
const (
	EstadoClienteActivo     = "activo"
	EstadoClienteInactivo   = "inactivo"
	EstadoClienteSuspendido = "suspendido"
)

// Cliente es la proyeccion de paciente de una cuenta de usuario.
type Cliente struct {
	ID             uint    `gorm:"primaryKey;column:id_cliente" json:"id_cliente"`
	UsuarioID      uint    `gorm:"column:id_usuario;uniqueIndex;not null" json:"id_usuario"`
	NombreCompleto string  `gorm:"column:nombre_completo;not null" json:"nombre_completo"`
	Telefono       string  `json:"telefono"`
	NombreUsuario  string  `gorm:"column:nombre_usuario" json:"nombre_usuario"`
	Ciudad         string  `json:"ciudad"`
	CodigoPostal   string  `gorm:"column:codigo_postal" json:"codigo_postal"`
	Ingreso        float64 `json:"ingreso"`
	Estado         string  `gorm:"default:activo" json:"estado"`

	Sesiones     []Sesion     `gorm:"foreignKey:ClienteID" json:"sesiones,omitempty"`
	Valoraciones []Valoracion `gorm:"foreignKey:ClienteID" json:"valoraciones,omitempty"`
}

func (Cliente) TableName() string { return "clientes" }
