package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	tenantID uint,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := last.Format("2006-01-02")

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		tenantID,
		barberID,
		from,
		to,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
