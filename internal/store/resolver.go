package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"naxine_api/internal/models"
)

// Resolver implements policy.OwnershipResolver on top of gorm. Lookups are
// pure reads keyed by the owning-user foreign key; a missing projection is
// reported as absent, never as an error.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) OwnedClientID(ctx context.Context, usuarioID uint) (uint, bool, error) {
	c, err := r.OwnedClient(ctx, usuarioID)
	if err != nil || c == nil {
		return 0, false, err
	}
	return c.ID, true, nil
}

func (r *Resolver) OwnedProfessionalID(ctx context.Context, usuarioID uint) (uint, bool, error) {
	p, err := r.OwnedProfessional(ctx, usuarioID)
	if err != nil || p == nil {
		return 0, false, err
	}
	return p.ID, true, nil
}

// OwnedClient returns the Cliente projection of a user, or nil when the
// account has none.
func (r *Resolver) OwnedClient(ctx context.Context, usuarioID uint) (*models.Cliente, error) {
	var c models.Cliente
	err := r.db.WithContext(ctx).Where("id_usuario = ?", usuarioID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// OwnedProfessional returns the Profesional projection of a user, or nil
// when the account has none.
func (r *Resolver) OwnedProfessional(ctx context.Context, usuarioID uint) (*models.Profesional, error) {
	var p models.Profesional
	err := r.db.WithContext(ctx).Where("id_usuario = ?", usuarioID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
