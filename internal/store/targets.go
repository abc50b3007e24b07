package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"naxine_api/internal/models"
	"naxine_api/internal/policy"
)

// Targets implements policy.TargetStore: the owning foreign keys of the
// record an operation points at.
type Targets struct {
	db *gorm.DB
}

func NewTargets(db *gorm.DB) *Targets {
	return &Targets{db: db}
}

func (t *Targets) OwnerRef(ctx context.Context, e policy.Entity, id uint) (*policy.OwnerRef, error) {
	db := t.db.WithContext(ctx)

	switch e {
	case policy.EntityCliente:
		var c models.Cliente
		if err := db.First(&c, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{ClienteID: c.ID, Activo: true}, nil

	case policy.EntityProfesional:
		var p models.Profesional
		if err := db.First(&p, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{ProfesionalID: p.ID, Activo: p.Activo}, nil

	case policy.EntitySesion:
		var s models.Sesion
		if err := db.First(&s, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{ClienteID: s.ClienteID, ProfesionalID: s.ProfesionalID, Activo: true}, nil

	case policy.EntityValoracion:
		var v models.Valoracion
		if err := db.First(&v, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{ClienteID: v.ClienteID, ProfesionalID: v.ProfesionalID, Activo: true}, nil

	case policy.EntityPago:
		var p models.Pago
		if err := db.First(&p, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{ProfesionalID: p.ProfesionalID, Activo: true}, nil

	case policy.EntityPrecio:
		var p models.Precio
		if err := db.First(&p, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{Activo: true}, nil

	case policy.EntityUsuario:
		var u models.Usuario
		if err := db.First(&u, id).Error; err != nil {
			return nil, absent(err)
		}
		return &policy.OwnerRef{Activo: true}, nil
	}
	return nil, fmt.Errorf("unknown entity %q", e)
}

// absent maps a not-found lookup to the nil-ref contract.
func absent(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
