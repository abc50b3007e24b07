package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"naxine_api/internal/models"
)

// ErrLastAdministrator rejects deleting the only remaining administrator
// account.
var ErrLastAdministrator = errors.New("cannot delete the last administrator")

// Usuarios is the user directory: lookups for the authentication gate and
// the guarded deletion enforcing the administrator invariant.
type Usuarios struct {
	db *gorm.DB
}

func NewUsuarios(db *gorm.DB) *Usuarios {
	return &Usuarios{db: db}
}

func (s *Usuarios) ByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var u models.Usuario
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Usuarios) ByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var u models.Usuario
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Usuarios) TouchUltimoAcceso(ctx context.Context, id uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.Usuario{}).
		Where("id_usuario = ?", id).
		Update("ultimo_acceso", &now).Error
}

// DeleteGuarded deletes a user, refusing to drop the administrator count
// below one. The count and the delete run in one transaction with the
// administrator rows locked, so two concurrent deletes cannot both pass
// the check.
func (s *Usuarios) DeleteGuarded(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Usuario
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&target, id).Error; err != nil {
			return err
		}
		if target.Rol == models.RolAdministrador {
			var admins []models.Usuario
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("rol = ?", models.RolAdministrador).
				Find(&admins).Error; err != nil {
				return err
			}
			if len(admins) <= 1 {
				return ErrLastAdministrator
			}
		}
		return tx.Delete(&target).Error
	})
}
