package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TenantID uint   `gorm:"index" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tenant"`

	BarberID uint   `gorm:"index:idx_ap_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Dia e hora locais da sede: data "YYYY-MM-DD" + minutos desde meia-noite.
	Date        string `gorm:"size:10;index:idx_ap_barber_date" json:"date"`
	StartMin    int    `json:"start_min"`
	DurationMin int    `json:"duration_min"`

	// Snapshot dos serviços escolhidos; os totais são sempre a soma deles.
	Services   []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	TotalPrice float64              `json:"total_price"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService congela nome, preço e duração do serviço no momento do
// agendamento; edições posteriores do catálogo não mexem no histórico.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	Name        string  `gorm:"size:100" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}
