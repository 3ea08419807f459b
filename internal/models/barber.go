package models

import "time"

// Barbeiro atendível de uma sede. A agenda semanal fica em WorkingHours
// (uma linha por dia configurado) e os bloqueios pontuais em BlockedHours.
type Barber struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
