package repository

import (
	"context"

	"github.com/alecruz/nacho-backend/internal/model"
	"gorm.io/gorm"
)

// CampoRepo adds the campo-only hard delete on top of the shared lifecycle.
// Soft delete remains the authoritative removal path.
type CampoRepo struct {
	*RecursoRepo[model.Campo]
}

// NewCampoRepo creates the repository for campos
func NewCampoRepo(db *gorm.DB) *CampoRepo {
	return &CampoRepo{
		RecursoRepo: newRecursoRepo[model.Campo](db, "CAMPO_DUPLICADO", "Ya existe un campo activo con ese nombre."),
	}
}

// HardDelete permanently removes a campo row
func (r *CampoRepo) HardDelete(ctx context.Context, clienteID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cliente_id = ?", id, clienteID).
		Delete(&model.Campo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
