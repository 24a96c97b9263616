package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TimeOffHandler struct {
	db *gorm.DB
}

func NewTimeOffHandler(db *gorm.DB) *TimeOffHandler {
	return &TimeOffHandler{db: db}
}

type CreateTimeOffRequest struct {
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
	Reason *string   `json:"reason"`
}

type UpdateTimeOffRequest struct {
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	Reason *string    `json:"reason"`
}

// ListFuture returns intervals that have not yet ended, soonest first.
func (h *TimeOffHandler) ListFuture(c *gin.Context) {
	var offs []models.TimeOff
	if err := h.db.
		Where(`"end" >= ?`, time.Now()).
		Order("start ASC").
		Find(&offs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_time_off", "Could not list time off.")
		return
	}

	c.JSON(http.StatusOK, offs)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !req.End.After(req.Start) {
		httperr.BadRequest(c, "invalid_interval", "End must be after start.")
		return
	}

	off := models.TimeOff{
		Start:  req.Start,
		End:    req.End,
		Reason: req.Reason,
	}

	if err := h.db.Create(&off).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_off", "Could not create time off.")
		return
	}

	c.JSON(http.StatusCreated, off)
}

func (h *TimeOffHandler) Update(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_time_off_id", "Invalid time off ID.")
		return
	}

	var off models.TimeOff
	if err := h.db.First(&off, id).Error; err != nil {
		httperr.NotFound(c, "time_off_not_found", "Time off not found.")
		return
	}

	var req UpdateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Start != nil {
		off.Start = *req.Start
	}
	if req.End != nil {
		off.End = *req.End
	}
	if req.Reason != nil {
		off.Reason = req.Reason
	}

	if !off.End.After(off.Start) {
		httperr.BadRequest(c, "invalid_interval", "End must be after start.")
		return
	}

	if err := h.db.Save(&off).Error; err != nil {
		httperr.Internal(c, "failed_to_update_time_off", "Could not update time off.")
		return
	}

	c.JSON(http.StatusOK, off)
}

func (h *TimeOffHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_time_off_id", "Invalid time off ID.")
		return
	}

	if err := h.db.Delete(&models.TimeOff{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_time_off", "Could not delete time off.")
		return
	}

	c.Status(http.StatusNoContent)
}
