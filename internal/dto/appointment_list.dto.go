package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	TotalPrice  float64   `json:"total_price"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	Services    []string  `json:"services"`
	CreatedAt   time.Time `json:"created_at"`
}
