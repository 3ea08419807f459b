package models

import "time"

// BlockedHours é um bloqueio pontual da agenda: vale só para a data exata,
// ao contrário da pausa de almoço, que repete toda semana.
type BlockedHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`
	BarberID uint `gorm:"index:idx_bh_barber_date" json:"barber_id"`

	Date      string `gorm:"size:10;index:idx_bh_barber_date" json:"date"` // "YYYY-MM-DD"
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
