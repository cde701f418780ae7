package model

import "time"

// The four tenant-scoped master-data resources share the same lifecycle:
// created active, mutated in place, retired by flipping activo. At most one
// active row per (cliente_id, LOWER(nombre)) exists per table; the partial
// unique indexes in Migrate enforce it so a name can be reused once the old
// row is deactivated. Activo has no column default on purpose: GORM skips
// zero-valued fields carrying a default tag, which would silently turn an
// inserted inactive row into an active one. Every insert sets it explicitly.

// Campo represents a field owned by a tenant
type Campo struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ClienteID     uint      `json:"cliente_id" gorm:"index;not null"`
	Nombre        string    `json:"nombre" gorm:"type:varchar(255);not null"`
	Superficie    float64   `json:"superficie" gorm:"not null"`
	Observaciones *string   `json:"observaciones" gorm:"type:text"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// Cultivo represents a crop type
type Cultivo struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ClienteID     uint      `json:"cliente_id" gorm:"index;not null"`
	Nombre        string    `json:"nombre" gorm:"type:varchar(255);not null"`
	Observaciones *string   `json:"observaciones" gorm:"type:text"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// Insumo represents a supply (seed, fertilizer, agrochemical, ...)
type Insumo struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ClienteID     uint      `json:"cliente_id" gorm:"index;not null"`
	Nombre        string    `json:"nombre" gorm:"type:varchar(255);not null"`
	Categoria     *string   `json:"categoria" gorm:"type:varchar(100)"`
	Unidad        *string   `json:"unidad" gorm:"type:varchar(50)"`
	Observaciones *string   `json:"observaciones" gorm:"type:text"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// Parametro represents a tenant-configurable parameter
type Parametro struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ClienteID     uint      `json:"cliente_id" gorm:"index;not null"`
	Nombre        string    `json:"nombre" gorm:"type:varchar(255);not null"`
	Observaciones *string   `json:"observaciones" gorm:"type:text"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}
