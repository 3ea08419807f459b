package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberflow/agenda-api/internal/audit"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	tenants      map[uint]*models.Tenant
	barbers      map[uint]*models.Barber
	services     map[uint]*models.Service
	clients      []*models.Client
	workingHours []models.WorkingHours
	blockedHours []models.BlockedHours
	appointments []*models.Appointment

	// Falha injetada nas buscas por telefone (simula banco instável).
	phoneLookupErr error

	nextClientID      uint
	nextAppointmentID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:           map[uint]*models.Tenant{},
		barbers:           map[uint]*models.Barber{},
		services:          map[uint]*models.Service{},
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

func (f *fakeRepo) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	if t, ok := f.tenants[id]; ok {
		return t, nil
	}
	return nil, errors.New("tenant not found")
}

func (f *fakeRepo) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	for _, t := range f.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, errors.New("tenant not found")
}

func (f *fakeRepo) GetBarber(_ context.Context, tenantID, barberID uint) (*models.Barber, error) {
	if b, ok := f.barbers[barberID]; ok && b.TenantID == tenantID {
		return b, nil
	}
	return nil, errors.New("barber not found")
}

func (f *fakeRepo) ListWorkingHours(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	var out []models.WorkingHours
	for _, wh := range f.workingHours {
		if wh.BarberID == barberID {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBlockedHours(_ context.Context, barberID uint, date string) ([]models.BlockedHours, error) {
	var out []models.BlockedHours
	for _, bh := range f.blockedHours {
		if bh.BarberID == barberID && bh.Date == date {
			out = append(out, bh)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListServicesByIDs(_ context.Context, tenantID, _ uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := f.services[id]; ok && s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetClient(_ context.Context, tenantID, clientID uint) (*models.Client, error) {
	for _, c := range f.clients {
		if c.ID == clientID && c.TenantID == tenantID {
			return c, nil
		}
	}
	return nil, errors.New("client not found")
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func (f *fakeRepo) FindClientByPhone(_ context.Context, tenantID uint, digits string) (*models.Client, error) {
	if f.phoneLookupErr != nil {
		return nil, f.phoneLookupErr
	}
	for _, c := range f.clients {
		if c.TenantID == tenantID && onlyDigits(c.Phone) == digits {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindClientByPhoneGlobal(_ context.Context, digits string) (*models.Client, error) {
	if f.phoneLookupErr != nil {
		return nil, f.phoneLookupErr
	}
	for _, c := range f.clients {
		if onlyDigits(c.Phone) == digits {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateClient(_ context.Context, client *models.Client) error {
	client.ID = f.nextClientID
	f.nextClientID++
	f.clients = append(f.clients, client)
	return nil
}

func (f *fakeRepo) AddLoyaltyPoints(_ context.Context, clientID uint, points int) error {
	for _, c := range f.clients {
		if c.ID == clientID {
			c.LoyaltyPoints += points
			return nil
		}
	}
	return errors.New("client not found")
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, tenantID, barberID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TenantID == tenantID && ap.BarberID == barberID && ap.Date == date && ap.Status != "cancelled" {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextAppointmentID
	f.nextAppointmentID++
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, tenantID, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.TenantID == tenantID {
			return ap, nil
		}
	}
	return nil, errors.New("appointment not found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range f.appointments {
		if existing.ID == ap.ID {
			f.appointments[i] = ap
			return nil
		}
	}
	return errors.New("appointment not found")
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, tenantID, barberID uint, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.TenantID != tenantID || ap.Date < from || ap.Date > to {
			continue
		}
		if barberID != 0 && ap.BarberID != barberID {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

// fakeIdem rejeita chaves já vistas, como o SETNX do Redis.
type fakeIdem struct {
	seen map[string]bool
}

func (f *fakeIdem) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

// ======================================================
// HELPERS
// ======================================================

const futureDate = "2200-05-20"

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

func seedRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.tenants[1] = &models.Tenant{ID: 1, Name: "Sede Centro", Slug: "centro", Timezone: "America/Sao_Paulo"}
	repo.barbers[10] = &models.Barber{ID: 10, TenantID: 1, Name: "Carlos", Active: true}
	repo.services[100] = &models.Service{ID: 100, TenantID: 1, Name: "Corte", DurationMin: 30, Price: 50}
	repo.services[101] = &models.Service{ID: 101, TenantID: 1, Name: "Barba", DurationMin: 30, Price: 30}
	return repo
}

func newBookUC(repo *fakeRepo) *Book {
	return NewBook(repo, &fakeIdem{}, newTestDispatcher())
}

func validInput() BookInput {
	return BookInput{
		TenantID:    1,
		BarberID:    10,
		ClientName:  "João",
		ClientPhone: "(11) 98888-7777",
		ServiceIDs:  []uint{100},
		Date:        futureDate,
		Time:        "10:00",
	}
}

func assertBusiness(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected business error %q, got nil", code)
	}
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected business error %q, got %v", code, err)
	}
}

// ======================================================
// TESTS
// ======================================================

func TestBookSuccess(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	in := validInput()
	in.ServiceIDs = []uint{100, 101}

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.StartMin != 600 {
		t.Fatalf("expected start 600, got %d", ap.StartMin)
	}
	if ap.DurationMin != 60 {
		t.Fatalf("expected duration 60, got %d", ap.DurationMin)
	}
	if ap.TotalPrice != 80 {
		t.Fatalf("expected total 80, got %f", ap.TotalPrice)
	}
	if ap.Status != "confirmed" {
		t.Fatalf("expected status confirmed, got %q", ap.Status)
	}
	if len(ap.Services) != 2 {
		t.Fatalf("expected 2 service snapshots, got %d", len(ap.Services))
	}
}

func TestBookMissingFieldOrder(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	cases := []struct {
		name  string
		mut   func(*BookInput)
		field string
	}{
		{"sem serviços", func(in *BookInput) { in.ServiceIDs = nil }, "services"},
		{"sem hora", func(in *BookInput) { in.Time = " " }, "time"},
		{"sem barbeiro", func(in *BookInput) { in.BarberID = 0 }, "barber"},
		{"convidado sem nome", func(in *BookInput) { in.ClientName = "" }, "name"},
		{"convidado sem telefone", func(in *BookInput) { in.ClientPhone = "" }, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mut(&in)

			_, err := uc.Execute(context.Background(), in)
			assertBusiness(t, err, httperr.CodeMissingField)

			if got := httperr.BusinessField(err); got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
		})
	}
}

// Serviços vazios ganham de hora vazia: a ordem dos campos é fixa.
func TestBookMissingFieldFirstWins(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	in := validInput()
	in.ServiceIDs = nil
	in.Time = ""

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, httperr.CodeMissingField)

	if got := httperr.BusinessField(err); got != "services" {
		t.Fatalf("expected field services, got %q", got)
	}
}

func TestBookPastSlot(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	in := validInput()
	in.Date = "2020-01-15"

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, httperr.CodePastSlot)
}

func TestBookInvalidDate(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	in := validInput()
	in.Date = "20-05-2200"

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, "invalid_date_or_time")
}

func TestBookUnknownService(t *testing.T) {
	repo := seedRepo()
	uc := newBookUC(repo)

	in := validInput()
	in.ServiceIDs = []uint{999}

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, "service_not_found")
}

func TestBookConflictOnRecheck(t *testing.T) {
	repo := seedRepo()
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 1, TenantID: 1, BarberID: 10,
		Date: futureDate, StartMin: 600, DurationMin: 60,
		Status: "confirmed",
	})
	repo.nextAppointmentID = 2

	uc := newBookUC(repo)

	in := validInput()
	in.Time = "10:15"

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, httperr.CodeTimeConflict)
}

// Agendamento cancelado não ocupa o horário.
func TestBookIgnoresCancelled(t *testing.T) {
	repo := seedRepo()
	repo.appointments = append(repo.appointments, &models.Appointment{
		ID: 1, TenantID: 1, BarberID: 10,
		Date: futureDate, StartMin: 600, DurationMin: 60,
		Status: "cancelled",
	})
	repo.nextAppointmentID = 2

	uc := newBookUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBookReusesClientByPhoneInTenant(t *testing.T) {
	repo := seedRepo()
	repo.clients = append(repo.clients, &models.Client{
		ID: 1, TenantID: 1, Name: "João Antigo",
		Phone: "11988887777", Status: models.ClientStatusActive,
	})
	repo.nextClientID = 2

	uc := newBookUC(repo)

	ap, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ClientID != 1 {
		t.Fatalf("expected reuse of client 1, got %d", ap.ClientID)
	}
	if len(repo.clients) != 1 {
		t.Fatalf("expected no new client, got %d", len(repo.clients))
	}
}

func TestBookCopiesClientFromOtherTenant(t *testing.T) {
	repo := seedRepo()
	repo.clients = append(repo.clients, &models.Client{
		ID: 1, TenantID: 2, Name: "João Filial",
		Phone: "11988887777", Email: "joao@example.com",
		LoyaltyPoints: 50, Status: models.ClientStatusActive,
	})
	repo.nextClientID = 2

	uc := newBookUC(repo)

	ap, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ClientID == 1 {
		t.Fatalf("expected a copy, got reference to the other tenant's client")
	}
	if len(repo.clients) != 2 {
		t.Fatalf("expected copied client, got %d clients", len(repo.clients))
	}

	copied := repo.clients[1]
	if copied.TenantID != 1 {
		t.Fatalf("expected copy in tenant 1, got %d", copied.TenantID)
	}
	if copied.Name != "João Filial" || copied.Email != "joao@example.com" {
		t.Fatalf("expected copied profile, got %+v", copied)
	}
	if copied.LoyaltyPoints != 0 {
		t.Fatalf("loyalty points must not cross tenants, got %d", copied.LoyaltyPoints)
	}
}

func TestBookMissingPhoneOnSessionClient(t *testing.T) {
	repo := seedRepo()
	repo.clients = append(repo.clients, &models.Client{
		ID: 1, TenantID: 1, Name: "Sem Fone",
		Phone: "", Status: models.ClientStatusActive,
	})
	repo.nextClientID = 2

	uc := newBookUC(repo)

	in := validInput()
	in.ClientID = 1
	in.ClientName = ""
	in.ClientPhone = ""

	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, httperr.CodeMissingPhone)
}

func TestBookDuplicateRequest(t *testing.T) {
	repo := seedRepo()
	uc := NewBook(repo, &fakeIdem{}, newTestDispatcher())

	in := validInput()
	in.IdempotencyKey = "abc-123"

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	in.Time = "14:00" // replay com a mesma chave, mesmo mudando o horário
	_, err := uc.Execute(context.Background(), in)
	assertBusiness(t, err, httperr.CodeDuplicateRequest)
}

// Falha transitória na busca por telefone NÃO pode virar cliente duplicado:
// só ErrRecordNotFound segue a cadeia, o resto sobe como erro.
func TestBookPhoneLookupFailureSurfaces(t *testing.T) {
	repo := seedRepo()
	repo.clients = append(repo.clients, &models.Client{
		ID: 1, TenantID: 1, Name: "João",
		Phone: "11988887777", Status: models.ClientStatusActive,
	})
	repo.nextClientID = 2
	repo.phoneLookupErr = errors.New("connection reset")

	uc := newBookUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	if err == nil {
		t.Fatalf("expected lookup failure to surface, got nil")
	}
	if httperr.IsBusiness(err, httperr.CodeMissingPhone) || errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("lookup failure mistaken for not-found: %v", err)
	}

	if len(repo.clients) != 1 {
		t.Fatalf("flaky read must not create a duplicate client, got %d", len(repo.clients))
	}
	if len(repo.appointments) != 0 {
		t.Fatalf("no appointment expected, got %d", len(repo.appointments))
	}
}

// A antecedência mínima da sede empurra o corte de "passado" para frente.
func TestBookMinAdvanceWindow(t *testing.T) {
	repo := seedRepo()
	// ~190 anos de antecedência: nem a data de teste (2200) passa.
	repo.tenants[1].MinAdvanceMinutes = 100_000_000

	uc := newBookUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	assertBusiness(t, err, httperr.CodePastSlot)
}
