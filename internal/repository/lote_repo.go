package repository

import (
	"context"

	"github.com/alecruz/nacho-backend/internal/model"
	"gorm.io/gorm"
)

// LoteRepo handles land units and their crop allocations. Tenancy is not
// stored on the lote itself, so every read joins the owning campo against
// the caller's cliente_id. Writes touching lote_cultivos run inside a single
// transaction: either the lote and all allocation rows commit, or none do.
type LoteRepo struct {
	db  *gorm.DB
	dup *DuplicateError
}

// NewLoteRepo creates the repository for lotes
func NewLoteRepo(db *gorm.DB) *LoteRepo {
	return &LoteRepo{
		db:  db,
		dup: &DuplicateError{Code: "LOTE_DUPLICADO", Message: "Ya existe un lote activo con ese nombre en el campo."},
	}
}

func (r *LoteRepo) tenantScope(ctx context.Context, clienteID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Select("lotes.*").
		Joins("JOIN campos ON campos.id = lotes.campo_id AND campos.cliente_id = ?", clienteID)
}

// List returns active lotes ascending by id, each with its allocation set.
// campoID optionally narrows the result to one campo.
func (r *LoteRepo) List(ctx context.Context, clienteID uint, campoID *uint) ([]model.Lote, error) {
	lotes := make([]model.Lote, 0)
	q := r.tenantScope(ctx, clienteID).Where("lotes.activo = ?", true)
	if campoID != nil {
		q = q.Where("lotes.campo_id = ?", *campoID)
	}
	if err := q.Order("lotes.id ASC").Find(&lotes).Error; err != nil {
		return nil, err
	}
	if err := r.loadCultivos(ctx, lotes); err != nil {
		return nil, err
	}
	return lotes, nil
}

// FindByID returns the lote with its allocation set, regardless of activo.
// Lotes of other tenants are reported as ErrNotFound.
func (r *LoteRepo) FindByID(ctx context.Context, clienteID, id uint) (*model.Lote, error) {
	var lote model.Lote
	err := r.tenantScope(ctx, clienteID).Where("lotes.id = ?", id).Take(&lote).Error
	if err != nil {
		return nil, translate(err, r.dup)
	}
	lotes := []model.Lote{lote}
	if err := r.loadCultivos(ctx, lotes); err != nil {
		return nil, err
	}
	return &lotes[0], nil
}

// Create inserts the lote and all allocation rows atomically
func (r *LoteRepo) Create(ctx context.Context, lote *model.Lote, cultivos []model.LoteCultivo) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lote).Error; err != nil {
			return err
		}
		if len(cultivos) == 0 {
			return nil
		}
		for i := range cultivos {
			cultivos[i].ID = 0
			cultivos[i].LoteID = lote.ID
		}
		return tx.Create(&cultivos).Error
	})
	return translate(err, r.dup)
}

// Update persists the lote's fields and, when cultivos is non-nil, replaces
// the whole allocation set in the same transaction. A nil cultivos leaves
// the existing allocations untouched; an empty slice removes them all.
func (r *LoteRepo) Update(ctx context.Context, lote *model.Lote, cultivos *[]model.LoteCultivo) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lote).Error; err != nil {
			return err
		}
		if cultivos == nil {
			return nil
		}
		if err := tx.Where("lote_id = ?", lote.ID).Delete(&model.LoteCultivo{}).Error; err != nil {
			return err
		}
		rows := *cultivos
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].LoteID = lote.ID
		}
		return tx.Create(&rows).Error
	})
	return translate(err, r.dup)
}

// Deactivate flips activo off and returns the stored row. Calling it again
// on an inactive lote keeps returning the row.
func (r *LoteRepo) Deactivate(ctx context.Context, clienteID, id uint) (*model.Lote, error) {
	lote, err := r.FindByID(ctx, clienteID, id)
	if err != nil {
		return nil, err
	}
	if lote.Activo {
		if err := r.db.WithContext(ctx).
			Model(&model.Lote{}).
			Where("id = ?", lote.ID).
			Update("activo", false).Error; err != nil {
			return nil, err
		}
		lote.Activo = false
	}
	return lote, nil
}

// loadCultivos attaches the allocation sets, resolving crop names in one
// query for all lotes.
func (r *LoteRepo) loadCultivos(ctx context.Context, lotes []model.Lote) error {
	if len(lotes) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(lotes))
	for i := range lotes {
		lotes[i].Cultivos = make([]model.CultivoAsignado, 0)
		ids = append(ids, lotes[i].ID)
	}

	var asignados []model.CultivoAsignado
	err := r.db.WithContext(ctx).
		Table("lote_cultivos").
		Select("lote_cultivos.lote_id, lote_cultivos.cultivo_id, cultivos.nombre AS cultivo_nombre, lote_cultivos.ha_cultivo").
		Joins("JOIN cultivos ON cultivos.id = lote_cultivos.cultivo_id").
		Where("lote_cultivos.lote_id IN ?", ids).
		Order("lote_cultivos.id ASC").
		Scan(&asignados).Error
	if err != nil {
		return err
	}

	byLote := make(map[uint][]model.CultivoAsignado, len(lotes))
	for _, a := range asignados {
		byLote[a.LoteID] = append(byLote[a.LoteID], a)
	}
	for i := range lotes {
		if set, ok := byLote[lotes[i].ID]; ok {
			lotes[i].Cultivos = set
		}
	}
	return nil
}
