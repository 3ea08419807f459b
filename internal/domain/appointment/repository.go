package appointment

import (
	"context"

	"github.com/barberflow/agenda-api/internal/models"
)

// Repository é o contrato de persistência do motor de agendamento. Toda
// operação recebe o tenant explicitamente; não existe "sede ativa" ambiente.
type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	GetTenantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Tenant, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		tenantID uint,
		barberID uint,
	) (*models.Barber, error)

	ListWorkingHours(
		ctx context.Context,
		barberID uint,
	) ([]models.WorkingHours, error)

	ListBlockedHours(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.BlockedHours, error)

	// -------- Service --------
	ListServicesByIDs(
		ctx context.Context,
		tenantID uint,
		barberID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		tenantID uint,
		clientID uint,
	) (*models.Client, error)

	// FindClientByPhone procura por dígitos do telefone dentro da sede.
	FindClientByPhone(
		ctx context.Context,
		tenantID uint,
		phoneDigits string,
	) (*models.Client, error)

	// FindClientByPhoneGlobal procura em TODAS as sedes (dedup global).
	FindClientByPhoneGlobal(
		ctx context.Context,
		phoneDigits string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	AddLoyaltyPoints(
		ctx context.Context,
		clientID uint,
		points int,
	) error

	// -------- Appointment --------

	// ListAppointmentsForDay devolve os agendamentos NÃO cancelados do
	// barbeiro na data.
	ListAppointmentsForDay(
		ctx context.Context,
		tenantID uint,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	// CreateAppointment grava dentro de transação com recheck de conflito
	// travado; devolve erro de negócio time_conflict quando perde a corrida.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID uint,
		barberID uint,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)
}
