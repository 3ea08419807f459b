package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/barberflow/agenda-api/internal/audit"
	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/models"
	"github.com/barberflow/agenda-api/internal/timezone"
	"github.com/barberflow/agenda-api/internal/validators"
)

// Janela de guarda da chave de idempotência de um booking.
const idempotencyTTL = 10 * time.Minute

// IdempotencyStore guarda chaves de booking já vistas (Redis SETNX).
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	TenantID uint
	BarberID uint

	// ClientID vem da sessão do cliente logado; zero no fluxo de convidado.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string // "YYYY-MM-DD"
	Time  string // "HH:MM"
	Notes string

	// Token gerado no cliente; opcional. Replays dentro do TTL são
	// rejeitados com duplicate_request.
	IdempotencyKey string

	// UserID do staff quando o booking é feito pela recepção.
	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo  domain.Repository
	idem  IdempotencyStore
	audit *audit.Dispatcher
}

func NewBook(
	repo domain.Repository,
	idem IdempotencyStore,
	audit *audit.Dispatcher,
) *Book {
	return &Book{
		repo:  repo,
		idem:  idem,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida e persiste uma tentativa de booking de ponta a ponta.
// Estados terminais: agendamento criado ou um erro de negócio nomeado;
// não há retry automático em nenhum caminho.
func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Campos obrigatórios (primeiro campo faltante ganha o erro)
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusinessField(httperr.CodeMissingField, "services")
	}
	if strings.TrimSpace(in.Time) == "" {
		return nil, httperr.ErrBusinessField(httperr.CodeMissingField, "time")
	}
	if in.BarberID == 0 {
		return nil, httperr.ErrBusinessField(httperr.CodeMissingField, "barber")
	}
	if in.ClientID == 0 {
		if strings.TrimSpace(in.ClientName) == "" {
			return nil, httperr.ErrBusinessField(httperr.CodeMissingField, "name")
		}
		if strings.TrimSpace(in.ClientPhone) == "" {
			return nil, httperr.ErrBusinessField(httperr.CodeMissingField, "phone")
		}
	}

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarber(ctx, in.TenantID, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 2. Slot no passado ou dentro da antecedência mínima da sede
	//    (igualdade conta como passado)
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(tenant.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(tenant.Timezone)
	minStart := now.Add(time.Duration(tenant.MinAdvanceMinutes) * time.Minute)
	if !start.After(minStart) {
		return nil, httperr.ErrBusiness(httperr.CodePastSlot)
	}

	// --------------------------------------------------
	// 3. Idempotência (opcional, via Redis SETNX)
	// --------------------------------------------------
	if in.IdempotencyKey != "" && uc.idem != nil {
		acquired, err := uc.idem.Acquire(ctx, in.IdempotencyKey, idempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, httperr.ErrBusiness(httperr.CodeDuplicateRequest)
		}
	}

	// --------------------------------------------------
	// 4. Serviços + totais
	// --------------------------------------------------
	services, err := uc.repo.ListServicesByIDs(
		ctx,
		in.TenantID,
		in.BarberID,
		in.ServiceIDs,
	)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	snapshot := make([]models.AppointmentService, 0, len(services))
	for _, s := range services {
		snapshot = append(snapshot, models.AppointmentService{
			ServiceID:   s.ID,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
	}
	totalDuration, total := domain.Totals(snapshot)

	// --------------------------------------------------
	// 5. Cliente (sessão → telefone na sede → telefone global → cria)
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Recheck de conflito contra leitura fresca
	// --------------------------------------------------
	startMin := schedule.ToMinutes(in.Time)

	existing, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.TenantID,
		in.BarberID,
		in.Date,
	)
	if err != nil {
		return nil, err
	}

	bookings := make([]schedule.Booking, 0, len(existing))
	for _, ap := range existing {
		bookings = append(bookings, schedule.Booking{
			StartMin:    ap.StartMin,
			DurationMin: ap.DurationMin,
		})
	}

	if schedule.HasConflict(startMin, totalDuration, bookings) {
		return nil, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	// --------------------------------------------------
	// 7. Telefone obrigatório para contato de confirmação
	// --------------------------------------------------
	if validators.NormalizePhone(client.Phone) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingPhone)
	}

	// --------------------------------------------------
	// 8. Persistência (o repositório ainda trava e reconta)
	// --------------------------------------------------
	ap := &models.Appointment{
		TenantID:    in.TenantID,
		BarberID:    in.BarberID,
		ClientID:    client.ID,
		Date:        in.Date,
		StartMin:    startMin,
		DurationMin: totalDuration,
		Services:    snapshot,
		TotalPrice:  total,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveClient acha (ou cria) o cliente do booking. Cliente achado em OUTRA
// sede é copiado para a sede atual, nunca referenciado entre sedes. A criação
// do cliente antes da gravação do agendamento não é transacional; um cliente
// órfão após falha de persistência é aceito e reconciliado offline.
func (uc *Book) resolveClient(
	ctx context.Context,
	in BookInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.TenantID, in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return client, nil
	}

	digits := validators.NormalizePhone(in.ClientPhone)

	// "Não achou" segue para o próximo nível da cadeia; qualquer outra
	// falha de leitura sobe, senão um banco instável criaria duplicatas.
	client, err := uc.repo.FindClientByPhone(ctx, in.TenantID, digits)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	found, err := uc.repo.FindClientByPhoneGlobal(ctx, digits)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		copied := &models.Client{
			TenantID: in.TenantID,
			Name:     found.Name,
			Phone:    found.Phone,
			Email:    found.Email,
			Status:   models.ClientStatusActive,
		}
		if err := uc.repo.CreateClient(ctx, copied); err != nil {
			return nil, err
		}
		return copied, nil
	}

	client = &models.Client{
		TenantID: in.TenantID,
		Name:     in.ClientName,
		Phone:    in.ClientPhone,
		Email:    in.ClientEmail,
		Status:   models.ClientStatusActive,
	}
	if err := uc.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}
