package models

import "time"

// WorkingHours é o expediente de um barbeiro para um dia da semana.
// A ausência de QUALQUER linha para o barbeiro significa "sem configuração"
// (vale a janela padrão); linhas existindo mas faltando um weekday significa
// folga naquele dia. Essa distinção é regra de negócio, não detalhe.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_wh_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"index:idx_wh_barber_weekday" json:"weekday"` // 0=domingo .. 6=sábado

	StartTime  string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
