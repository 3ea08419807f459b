package appointment

import (
	"context"
	"time"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute monta a grade de slots de um (barbeiro, data). Puro fora das
// leituras: é re-executado a cada troca de data ou barbeiro na UI.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]schedule.Slot, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	// Data malformada não vira "grade toda no passado": falha nomeada.
	if _, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(tenant.Timezone),
	); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	barber, err := uc.repo.GetBarber(ctx, in.TenantID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if !barber.Active {
		return []schedule.Slot{}, nil
	}

	gen := schedule.GenerateInput{
		Date:   in.Date,
		Now:    timezone.NowIn(tenant.Timezone),
		Policy: in.Policy,
	}

	// A grade fixa da recepção não lê a configuração do barbeiro.
	if in.Policy == schedule.PolicyConfigured {
		hours, err := uc.repo.ListWorkingHours(ctx, in.BarberID)
		if err != nil {
			return nil, err
		}
		for _, wh := range hours {
			gen.Days = append(gen.Days, schedule.DayConfig{
				Weekday:    wh.Weekday,
				Active:     wh.Active,
				StartTime:  wh.StartTime,
				EndTime:    wh.EndTime,
				LunchStart: wh.LunchStart,
				LunchEnd:   wh.LunchEnd,
			})
		}

		blocks, err := uc.repo.ListBlockedHours(ctx, in.BarberID, in.Date)
		if err != nil {
			return nil, err
		}
		for _, b := range blocks {
			gen.Blocks = append(gen.Blocks, schedule.Block{
				Date:      b.Date,
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
			})
		}
	}

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.TenantID,
		in.BarberID,
		in.Date,
	)
	if err != nil {
		return nil, err
	}
	for _, ap := range appointments {
		gen.Bookings = append(gen.Bookings, schedule.Booking{
			StartMin:    ap.StartMin,
			DurationMin: ap.DurationMin,
		})
	}

	return schedule.Generate(gen), nil
}
