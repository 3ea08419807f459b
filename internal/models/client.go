package models

import "time"

const (
	ClientStatusActive    = "active"
	ClientStatusSuspended = "suspended"
)

// Cliente da sede, sem login. O telefone (só dígitos) é a chave natural de
// deduplicação: um cliente achado em outra sede é COPIADO para a sede atual,
// nunca referenciado entre sedes.
type Client struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	LoyaltyPoints int    `gorm:"default:0" json:"loyalty_points"`
	Status        string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
