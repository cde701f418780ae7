package model

import "time"

// Lote represents a land unit inside a campo. Tenancy is inherited through
// the owning campo, so every lote query joins campos on cliente_id.
type Lote struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CampoID       uint      `json:"campo_id" gorm:"index;not null"`
	Nombre        string    `json:"nombre" gorm:"type:varchar(255);not null"`
	Superficie    float64   `json:"superficie" gorm:"not null"`
	Observaciones *string   `json:"observaciones" gorm:"type:text"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`

	// Cultivos is assembled from lote_cultivos joined with cultivos; it is
	// not a GORM association.
	Cultivos []CultivoAsignado `json:"cultivos" gorm:"-"`
}

// LoteCultivo assigns part of a lote's area to a crop. Repeated
// (lote_id, cultivo_id) pairs are allowed; only the area sum is constrained.
type LoteCultivo struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	LoteID    uint    `json:"lote_id" gorm:"index;not null"`
	CultivoID uint    `json:"cultivo_id" gorm:"not null"`
	HaCultivo float64 `json:"ha_cultivo" gorm:"not null"`
}

// CultivoAsignado is the read shape of an allocation, with the crop name
// resolved for the client.
type CultivoAsignado struct {
	LoteID        uint    `json:"-"`
	CultivoID     uint    `json:"cultivo_id"`
	CultivoNombre string  `json:"cultivo_nombre"`
	HaCultivo     float64 `json:"ha_cultivo"`
}
