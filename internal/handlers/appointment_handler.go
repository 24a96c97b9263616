package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	cancel   *ucAppointment.CancelAppointment
	complete *ucAppointment.CompleteAppointment
	cache    *cache.Availability
}

func NewAppointmentHandler(
	db *gorm.DB,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	availability *cache.Availability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		cancel:   cancel,
		complete: complete,
		cache:    availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Raw admin insert: the dashboard calendar sometimes blocks arbitrary
// ranges without going through the public booking flow. Times are taken
// verbatim; the exclusion constraint still guards BOOKED overlaps.
type CreateAppointmentRequest struct {
	ClientID        *uint  `json:"client_id"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	Status          string `json:"status" binding:"omitempty,oneof=BOOKED CANCELLED COMPLETED"`
	TotalPriceCents *int   `json:"total_price_cents"`
}

// ======================================================
// LIST (admin calendar, with client and copied service lines)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.
		Preload("Client").
		Preload("Services").
		Preload("Services.Service")

	if date := c.Query("date"); date != "" {
		if !ValidDateISO(date) {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		q = q.Where("appointment_date = ?", date)
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var aps []models.Appointment
	if err := q.
		Order("appointment_date DESC, start_time DESC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment ID.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Services").
		Preload("Services.Service").
		First(&ap, id).Error; err != nil {

		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CREATE (raw)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !ValidDateISO(req.AppointmentDate) || !ValidHHMM(req.StartTime) || !ValidHHMM(req.EndTime) {
		httperr.BadRequest(c, "invalid_date_or_time", "Date must be YYYY-MM-DD, times HH:MM.")
		return
	}

	startMin, _ := domain.ToMinutes(req.StartTime)
	endMin, _ := domain.ToMinutes(req.EndTime)
	if endMin <= startMin {
		httperr.BadRequest(c, "invalid_interval", "End time must be after start time.")
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusBooked
	}

	ap := models.Appointment{
		ClientID:        req.ClientID,
		AppointmentDate: req.AppointmentDate,
		StartTime:       req.StartTime + ":00",
		EndTime:         req.EndTime + ":00",
		Status:          status,
	}
	if req.TotalPriceCents != nil {
		ap.TotalPriceCents = *req.TotalPriceCents
	}

	if err := h.db.Create(&ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, httperr.CodeDoubleBooking, "Time slot is no longer available.")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), ap.AppointmentDate)

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUsername).(string)

	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment ID.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actor, id)
	if err != nil {
		h.mapStateError(c, err)
		return
	}

	// A cancelled appointment frees its slot.
	h.cache.InvalidateDate(c.Request.Context(), ap.AppointmentDate)

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor := c.MustGet(middleware.ContextUsername).(string)

	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment ID.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), actor, id)
	if err != nil {
		h.mapStateError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), ap.AppointmentDate)

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment ID.")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if err := h.db.Select("Services").Delete(&ap).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Could not delete appointment.")
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), ap.AppointmentDate)

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) mapStateError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Only booked appointments can change state.")
	default:
		httperr.Internal(c, "appointment_update_failed", "Could not update appointment.")
	}
}
