package model

import (
	"fmt"

	"gorm.io/gorm"
)

// uniqueActiveIndexes enforces the one-active-row-per-name invariant. These
// are partial functional indexes, which GORM struct tags cannot express; the
// SQL is valid on PostgreSQL and SQLite alike.
var uniqueActiveIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_campos_cliente_nombre_activo ON campos (cliente_id, LOWER(nombre)) WHERE activo`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cultivos_cliente_nombre_activo ON cultivos (cliente_id, LOWER(nombre)) WHERE activo`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_insumos_cliente_nombre_activo ON insumos (cliente_id, LOWER(nombre)) WHERE activo`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_parametros_cliente_nombre_activo ON parametros (cliente_id, LOWER(nombre)) WHERE activo`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_lotes_campo_nombre_activo ON lotes (campo_id, LOWER(nombre)) WHERE activo`,
}

// Migrate runs the schema migrations for all models and creates the partial
// unique indexes backing the soft-delete uniqueness invariant.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Usuario{},
		&Campo{},
		&Cultivo{},
		&Insumo{},
		&Parametro{},
		&Lote{},
		&LoteCultivo{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	for _, stmt := range uniqueActiveIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create unique index: %w", err)
		}
	}

	return nil
}
