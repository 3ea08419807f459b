package appointment

import (
	"time"

	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Totals
// ===============================

// Totals soma duração e preço dos snapshots de serviço. Serviço sem duração
// informada vale 30 minutos. O invariante do agendamento é exatamente este:
// duração total = soma das durações, total = soma dos preços.
func Totals(services []models.AppointmentService) (durationMin int, total float64) {
	for _, s := range services {
		d := s.DurationMin
		if d <= 0 {
			d = schedule.DefaultDurationMin
		}
		durationMin += d
		total += s.Price
	}
	return durationMin, total
}

// LoyaltyPointsFor converte o total pago em pontos de fidelidade
// (1 ponto por unidade monetária, truncado).
func LoyaltyPointsFor(total float64) int {
	if total < 0 {
		return 0
	}
	return int(total)
}
