package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/middleware"
	ucAppointment "github.com/barberflow/agenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC         *ucAppointment.Book
	availabilityUC *ucAppointment.GetAvailability
	confirmUC      *ucAppointment.ConfirmAppointment
	cancelUC       *ucAppointment.CancelAppointment
	completeUC     *ucAppointment.CompleteAppointment
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	bookUC *ucAppointment.Book,
	availabilityUC *ucAppointment.GetAvailability,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:         bookUC,
		availabilityUC: availabilityUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`

	// Ou um cliente já cadastrado...
	ClientID uint `json:"client_id"`
	// ...ou os dados para achar/criar um.
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:MM
	Notes      string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeMissingField):
		httperr.WriteField(c, http.StatusBadRequest,
			httperr.CodeMissingField,
			httperr.BusinessField(err),
			"Campo obrigatório ausente.",
		)
	case httperr.IsBusiness(err, httperr.CodePastSlot):
		httperr.BadRequest(c, httperr.CodePastSlot, "Esse horário já passou. Escolha outro.")
	case httperr.IsBusiness(err, httperr.CodeTimeConflict):
		httperr.Conflict(c, httperr.CodeTimeConflict, "Horário ocupado. Escolha outro slot.")
	case httperr.IsBusiness(err, httperr.CodeMissingPhone):
		httperr.BadRequest(c, httperr.CodeMissingPhone, "Cliente sem telefone cadastrado.")
	case httperr.IsBusiness(err, httperr.CodeDuplicateRequest):
		httperr.Conflict(c, httperr.CodeDuplicateRequest, "Agendamento já enviado.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
	case httperr.IsBusiness(err, "client_not_found"):
		httperr.BadRequest(c, "client_not_found", "Cliente não encontrado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}

// ======================================================
// AVAILABILITY (STAFF)
// ======================================================

// Availability expõe os dois tiers: o padrão resolve a configuração do
// barbeiro; tier=staff usa a grade fixa da recepção.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")
	if dateStr == "" || barberIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e barbeiro obrigatórios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	policy := schedule.PolicyConfigured
	if c.Query("tier") == "staff" {
		policy = schedule.PolicyFixedGrid
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			TenantID: tenantID,
			BarberID: uint(barberID),
			Date:     dateStr,
			Policy:   policy,
		},
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "barber_not_found"):
			httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
		default:
			httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE (STAFF)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.bookUC.Execute(
		c.Request.Context(),
		ucAppointment.BookInput{
			TenantID:       tenantID,
			BarberID:       req.BarberID,
			ClientID:       req.ClientID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			ServiceIDs:     req.ServiceIDs,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
			UserID:         &userID,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var barberID uint64
	if s := c.Query("barber_id"); s != "" {
		barberID, _ = strconv.ParseUint(s, 10, 64)
	}

	out, err := h.listByDateUC.Execute(
		c.Request.Context(),
		tenantID,
		uint(barberID),
		dateStr,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	var barberID uint64
	if s := c.Query("barber_id"); s != "" {
		barberID, _ = strconv.ParseUint(s, 10, 64)
	}

	out, err := h.listByMonthUC.Execute(
		c.Request.Context(),
		tenantID,
		uint(barberID),
		year,
		month,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// LIFECYCLE (CONFIRM / CANCEL / COMPLETE)
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.lifecycle(c, "confirm")
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, "cancel")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.lifecycle(c, "complete")
}

func (h *AppointmentHandler) lifecycle(c *gin.Context, action string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var (
		ap  any
		ucE error
	)

	switch action {
	case "confirm":
		ap, ucE = h.confirmUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	case "cancel":
		ap, ucE = h.cancelUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	case "complete":
		ap, ucE = h.completeUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	}

	if ucE != nil {
		switch {
		case httperr.IsBusiness(ucE, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(ucE, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}
