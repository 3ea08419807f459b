package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberflow/agenda-api/internal/middleware"
	"github.com/barberflow/agenda-api/internal/models"
)

type BlockedHoursHandler struct {
	db *gorm.DB
}

func NewBlockedHoursHandler(db *gorm.DB) *BlockedHoursHandler {
	return &BlockedHoursHandler{db: db}
}

type CreateBlockedHoursRequest struct {
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *BlockedHoursHandler) barber(c *gin.Context) (*models.Barber, bool) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	id := c.Param("barberId")

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&barber).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return nil, false
	}
	return &barber, true
}

func (h *BlockedHoursHandler) List(c *gin.Context) {
	barber, ok := h.barber(c)
	if !ok {
		return
	}

	q := h.db.Where("barber_id = ?", barber.ID)

	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var blocks []models.BlockedHours
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&blocks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_blocked_hours"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *BlockedHoursHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	barber, ok := h.barber(c)
	if !ok {
		return
	}

	var req CreateBlockedHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	block := models.BlockedHours{
		TenantID:  tenantID,
		BarberID:  barber.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_blocked_hours"})
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *BlockedHoursHandler) Delete(c *gin.Context) {
	barber, ok := h.barber(c)
	if !ok {
		return
	}

	result := h.db.
		Where("id = ? AND barber_id = ?", c.Param("id"), barber.ID).
		Delete(&models.BlockedHours{})

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blocked_hours"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "blocked_hours_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
