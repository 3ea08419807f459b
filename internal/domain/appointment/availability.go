package appointment

import "github.com/barberflow/agenda-api/internal/domain/schedule"

type AvailabilityInput struct {
	TenantID uint
	BarberID uint
	Date     string // "YYYY-MM-DD"
	Policy   schedule.Policy
}
