package repository

import (
	"context"
	"errors"

	"github.com/alecruz/nacho-backend/internal/model"
	"gorm.io/gorm"
)

// UsuarioRepo reads accounts from the credential store. Accounts are never
// written by this backend.
type UsuarioRepo struct {
	db *gorm.DB
}

// NewUsuarioRepo creates the repository for usuarios
func NewUsuarioRepo(db *gorm.DB) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

// FindByUsuario looks up an account by its globally unique username
func (r *UsuarioRepo) FindByUsuario(ctx context.Context, usuario string) (*model.Usuario, error) {
	var user model.Usuario
	err := r.db.WithContext(ctx).Where("usuario = ?", usuario).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
