package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barberflow/agenda-api/internal/domain/appointment"
	"github.com/barberflow/agenda-api/internal/domain/schedule"
	"github.com/barberflow/agenda-api/internal/httperr"
	"github.com/barberflow/agenda-api/internal/httpresp"
	"github.com/barberflow/agenda-api/internal/models"
	ucAppointment "github.com/barberflow/agenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serve a página de agendamento do cliente final.
// Tudo aqui é resolvido pelo slug da barbearia, sem autenticação.
type PublicHandler struct {
	db             *gorm.DB
	bookUC         *ucAppointment.Book
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	bookUC *ucAppointment.Book,
	availabilityUC *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		bookUC:         bookUC,
		availabilityUC: availabilityUC,
	}
}

func (h *PublicHandler) tenant(c *gin.Context) (*models.Tenant, bool) {
	var tenant models.Tenant
	if err := h.db.
		Where("slug = ?", c.Param("slug")).
		First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &tenant, true
}

// ======================================================
// TENANT INFO
// ======================================================

func (h *PublicHandler) Info(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     tenant.Name,
		"slug":     tenant.Slug,
		"timezone": tenant.Timezone,
	})
}

// ======================================================
// BARBERS / SERVICES
// ======================================================

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("tenant_id = ? AND active = ?", tenant.ID, true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	q := h.db.Where("tenant_id = ?", tenant.ID)

	// barber_id filtra os serviços do barbeiro mais os da sede (barber_id 0).
	if s := c.Query("barber_id"); s != "" {
		barberID, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		q = q.Where("barber_id IN (?, 0)", uint(barberID))
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY (GUEST)
// ======================================================

// Availability do convidado sempre usa a agenda configurada do barbeiro.
// A grade fixa é exclusiva da recepção.
func (h *PublicHandler) Availability(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

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

	if _, err := parseDateInTenant(tenant, dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			TenantID: tenant.ID,
			BarberID: uint(barberID),
			Date:     dateStr,
			Policy:   schedule.PolicyConfigured,
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
// BOOK (GUEST)
// ======================================================

type PublicBookRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

func (h *PublicHandler) Book(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req PublicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.bookUC.Execute(
		c.Request.Context(),
		ucAppointment.BookInput{
			TenantID:       tenant.ID,
			BarberID:       req.BarberID,
			ClientName:     req.Name,
			ClientPhone:    req.Phone,
			ClientEmail:    req.Email,
			ServiceIDs:     req.ServiceIDs,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
			IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     ap.ID,
		"date":   ap.Date,
		"time":   schedule.Label(ap.StartMin),
		"status": ap.Status,
	})
}
