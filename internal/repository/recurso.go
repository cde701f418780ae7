package repository

import (
	"context"

	"github.com/alecruz/nacho-backend/internal/model"
	"gorm.io/gorm"
)

// RecursoRepo implements the tenant-scoped lifecycle shared by campos,
// cultivos, insumos and parametros: list active rows, look up by id within
// the caller's tenant, insert active, full-field update, idempotent
// deactivate. Uniqueness conflicts come back as the kind's DuplicateError.
type RecursoRepo[T any] struct {
	db  *gorm.DB
	dup *DuplicateError
}

func newRecursoRepo[T any](db *gorm.DB, code, message string) *RecursoRepo[T] {
	return &RecursoRepo[T]{
		db:  db,
		dup: &DuplicateError{Code: code, Message: message},
	}
}

// NewCultivoRepo creates the repository for cultivos
func NewCultivoRepo(db *gorm.DB) *RecursoRepo[model.Cultivo] {
	return newRecursoRepo[model.Cultivo](db, "CULTIVO_DUPLICADO", "Ya existe un cultivo activo con ese nombre.")
}

// NewInsumoRepo creates the repository for insumos
func NewInsumoRepo(db *gorm.DB) *RecursoRepo[model.Insumo] {
	return newRecursoRepo[model.Insumo](db, "INSUMO_DUPLICADO", "Ya existe un insumo activo con ese nombre.")
}

// NewParametroRepo creates the repository for parametros
func NewParametroRepo(db *gorm.DB) *RecursoRepo[model.Parametro] {
	return newRecursoRepo[model.Parametro](db, "PARAMETRO_DUPLICADO", "Ya existe un parámetro activo con ese nombre.")
}

// List returns the tenant's active rows, newest first
func (r *RecursoRepo[T]) List(ctx context.Context, clienteID uint) ([]T, error) {
	rows := make([]T, 0)
	err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND activo = ?", clienteID, true).
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// FindByID returns the row only if it belongs to the tenant; a row owned by
// another tenant is reported as ErrNotFound.
func (r *RecursoRepo[T]) FindByID(ctx context.Context, clienteID, id uint) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).
		Where("id = ? AND cliente_id = ?", id, clienteID).
		Take(&row).Error
	if err != nil {
		return nil, translate(err, r.dup)
	}
	return &row, nil
}

// Create inserts the row as active
func (r *RecursoRepo[T]) Create(ctx context.Context, row *T) error {
	return translate(r.db.WithContext(ctx).Create(row).Error, r.dup)
}

// Update persists a full-field update of a row previously fetched under the
// caller's tenant. Callers never touch id or cliente_id on the row.
func (r *RecursoRepo[T]) Update(ctx context.Context, row *T) error {
	return translate(r.db.WithContext(ctx).Save(row).Error, r.dup)
}

// Deactivate flips activo off. The handler treats an already-inactive row as
// a no-op success before calling this.
func (r *RecursoRepo[T]) Deactivate(ctx context.Context, clienteID, id uint) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND cliente_id = ?", id, clienteID).
		Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
