package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *AppointmentGormRepository) GetTenantBySlug(
	ctx context.Context,
	slug string,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	tenantID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", barberID, tenantID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ListBlockedHours(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.BlockedHours, error) {

	var blocks []models.BlockedHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	tenantID uint,
	barberID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND id IN ? AND active = true AND (barber_id = 0 OR barber_id = ?)",
			tenantID, ids, barberID,
		).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	tenantID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Compara só os dígitos do telefone: "(11) 99876-5432" e "11998765432"
// são o mesmo cliente.
const phoneDigitsExpr = "regexp_replace(phone, '[^0-9]', '', 'g') = ?"

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	tenantID uint,
	phoneDigits string,
) (*models.Client, error) {

	if phoneDigits == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(phoneDigitsExpr, phoneDigits).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) FindClientByPhoneGlobal(
	ctx context.Context,
	phoneDigits string,
) (*models.Client, error) {

	if phoneDigits == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where(phoneDigitsExpr, phoneDigits).
		Order("created_at ASC").
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *AppointmentGormRepository) AddLoyaltyPoints(
	ctx context.Context,
	clientID uint,
	points int,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).
		Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	tenantID uint,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND barber_id = ? AND date = ? AND status <> ?",
			tenantID, barberID, date, "cancelled",
		).
		Order("start_min ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// lockConflicts monta a leitura travada (FOR UPDATE) dos agendamentos que
// cruzam o intervalo candidato. Carrega as linhas em vez de usar count(*):
// o Postgres rejeita cláusula de lock junto com agregação (0A000).
func lockConflicts(tx *gorm.DB, ap *models.Appointment) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND date = ? AND status <> ? AND start_min < ? AND start_min + duration_min > ?",
			ap.BarberID,
			ap.Date,
			"cancelled",
			ap.StartMin+ap.DurationMin,
			ap.StartMin,
		)
}

// CreateAppointment grava dentro de transação: trava e relê conflitos do
// mesmo (barbeiro, data) imediatamente antes do INSERT. Estreita a corrida
// entre dois submits simultâneos; a garantia final é da constraint EXCLUDE
// do banco (ver db.go), reconhecida por httperr.IsExclusionConflict.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := lockConflicts(tx, ap).Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness(httperr.CodeTimeConflict)
			}
			return err
		}

		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services").
		Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	tenantID uint,
	barberID uint,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"tenant_id = ? AND date >= ? AND date <= ?",
			tenantID, fromDate, toDate,
		)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	if err := q.
		Order("date ASC, start_min ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
