package appointment

import (
	"context"
	"testing"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/models"
)

func allWeekdays(barberID uint, start, end string) []models.WorkingHours {
	out := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		out = append(out, models.WorkingHours{
			BarberID:  barberID,
			Weekday:   wd,
			StartTime: start,
			EndTime:   end,
			Active:    true,
		})
	}
	return out
}

func TestGetAvailabilityConfiguredWindow(t *testing.T) {
	repo := seedRepo()
	repo.workingHours = allWeekdays(10, "09:00", "12:00")

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyConfigured,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:00, 09:30, 10:00, 10:30, 11:00, 11:30
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0].Time != "09:00" || slots[5].Time != "11:30" {
		t.Fatalf("unexpected slot bounds: %q .. %q", slots[0].Time, slots[5].Time)
	}
}

func TestGetAvailabilityDayOff(t *testing.T) {
	repo := seedRepo()

	// Configurado só para o weekday seguinte ao da data: folga na data.
	wd := (schedule.Weekday(futureDate) + 1) % 7
	repo.workingHours = []models.WorkingHours{{
		BarberID: 10, Weekday: wd,
		StartTime: "09:00", EndTime: "19:00", Active: true,
	}}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyConfigured,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on day off, got %d", len(slots))
	}
}

func TestGetAvailabilityDefaultWindowWhenUnconfigured(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyConfigured,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Janela padrão 09:00..19:00 → 20 slots de 30 minutos.
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
}

func TestGetAvailabilityMarksBookingsAndBlocks(t *testing.T) {
	repo := seedRepo()
	repo.workingHours = allWeekdays(10, "09:00", "12:00")
	repo.blockedHours = []models.BlockedHours{{
		BarberID: 10, Date: futureDate,
		StartTime: "09:00", EndTime: "10:00",
	}}
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 1, TenantID: 1, BarberID: 10,
		Date: futureDate, StartMin: 630, DurationMin: 60,
		Status: "confirmed",
	})

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyConfigured,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bloqueio remove 09:00 e 09:30; sobram 10:00..11:30.
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	byTime := map[string]schedule.Slot{}
	for _, s := range slots {
		byTime[s.Time] = s
	}

	// Agendamento de 60 min às 10:30 ocupa 10:30 e 11:00.
	for _, tc := range []struct {
		time  string
		taken bool
	}{
		{"10:00", false},
		{"10:30", true},
		{"11:00", true},
		{"11:30", false},
	} {
		s, ok := byTime[tc.time]
		if !ok {
			t.Fatalf("slot %s missing", tc.time)
		}
		if s.Taken != tc.taken {
			t.Fatalf("slot %s: expected taken=%v, got %v", tc.time, tc.taken, s.Taken)
		}
	}
}

// A grade fixa ignora expediente e bloqueios, mas ainda marca ocupados.
func TestGetAvailabilityFixedGrid(t *testing.T) {
	repo := seedRepo()
	repo.workingHours = allWeekdays(10, "09:00", "12:00")
	repo.blockedHours = []models.BlockedHours{{
		BarberID: 10, Date: futureDate,
		StartTime: "09:00", EndTime: "19:00",
	}}
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 1, TenantID: 1, BarberID: 10,
		Date: futureDate, StartMin: 840, DurationMin: 30,
		Status: "confirmed",
	})

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyFixedGrid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
	for _, s := range slots {
		want := s.Time == "14:00"
		if s.Taken != want {
			t.Fatalf("slot %s: expected taken=%v, got %v", s.Time, want, s.Taken)
		}
	}
}

// Data malformada falha nomeada em qualquer tier; uma grade fixa "toda no
// passado" esconderia o erro de entrada.
func TestGetAvailabilityInvalidDate(t *testing.T) {
	repo := seedRepo()
	uc := NewGetAvailability(repo)

	for _, policy := range []schedule.Policy{schedule.PolicyConfigured, schedule.PolicyFixedGrid} {
		_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
			TenantID: 1,
			BarberID: 10,
			Date:     "20/05/2200",
			Policy:   policy,
		})
		assertBusiness(t, err, "invalid_date")
	}
}

func TestGetAvailabilityInactiveBarber(t *testing.T) {
	repo := seedRepo()
	repo.barbers[10].Active = false

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TenantID: 1,
		BarberID: 10,
		Date:     futureDate,
		Policy:   schedule.PolicyConfigured,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for inactive barber, got %d", len(slots))
	}
}
