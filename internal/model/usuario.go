package model

import "time"

// Roles known to the backend. Role checks are allow-list based, so new
// roles only need to appear in the route wiring.
const RolAdmin = "ADMIN"

// Usuario represents an account in the credential store. Accounts are
// provisioned externally; this backend only reads them during login.
type Usuario struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ClienteID    uint      `json:"cliente_id" gorm:"index;not null"`
	Usuario      string    `json:"usuario" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Rol          string    `json:"rol" gorm:"type:varchar(50)"`
	Activo       bool      `json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
}
