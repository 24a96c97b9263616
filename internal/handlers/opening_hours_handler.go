package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type OpeningHoursHandler struct {
	db *gorm.DB
}

func NewOpeningHoursHandler(db *gorm.DB) *OpeningHoursHandler {
	return &OpeningHoursHandler{db: db}
}

// Admin screens show Monday first.
var dayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

type OpeningHoursRequest struct {
	DayOfWeek   string  `json:"day_of_week" binding:"required"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

func (r *OpeningHoursRequest) validate() (code, msg string, ok bool) {
	if _, known := dayOrder[r.DayOfWeek]; !known {
		return "invalid_day_of_week", "Unknown weekday name.", false
	}

	// Either both times or neither (closed day).
	if (r.OpeningTime == nil) != (r.ClosingTime == nil) {
		return "invalid_hours", "Opening and closing time must be set together.", false
	}

	if r.OpeningTime != nil {
		open, err1 := domain.ToMinutes(*r.OpeningTime)
		close, err2 := domain.ToMinutes(*r.ClosingTime)
		if err1 != nil || err2 != nil {
			return "invalid_time", "Times must be HH:MM.", false
		}
		if open >= close {
			return "invalid_hours", "Opening time must be before closing time.", false
		}
	}

	return "", "", true
}

func (h *OpeningHoursHandler) List(c *gin.Context) {
	var hours []models.OpeningHours
	if err := h.db.Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_list_opening_hours", "Could not list opening hours.")
		return
	}

	sort.Slice(hours, func(i, j int) bool {
		return dayOrder[hours[i].DayOfWeek] < dayOrder[hours[j].DayOfWeek]
	})

	c.JSON(http.StatusOK, hours)
}

func (h *OpeningHoursHandler) Upsert(c *gin.Context) {
	var req OpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if code, msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, code, msg)
		return
	}

	var row models.OpeningHours
	err := h.db.Where("day_of_week = ?", req.DayOfWeek).First(&row).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_opening_hours", "Could not load opening hours.")
		return
	}

	row.DayOfWeek = req.DayOfWeek
	row.OpeningTime = req.OpeningTime
	row.ClosingTime = req.ClosingTime

	if err := h.db.Save(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_save_opening_hours", "Could not save opening hours.")
		return
	}

	c.JSON(http.StatusOK, row)
}

func (h *OpeningHoursHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_opening_hours_id", "Invalid opening hours ID.")
		return
	}

	if err := h.db.Delete(&models.OpeningHours{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_opening_hours", "Could not delete opening hours.")
		return
	}

	c.Status(http.StatusNoContent)
}
