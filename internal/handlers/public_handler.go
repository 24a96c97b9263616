package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking wizard: catalog reads
// plus the availability/booking core.
type PublicHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	media *media.Store
	cache *cache.Availability

	availability *ucBooking.GetAvailability
	createUC     *ucBooking.CreateBooking
}

func NewPublicHandler(
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	store *media.Store,
	availability *cache.Availability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		cfg:          cfg,
		media:        store,
		cache:        availability,
		availability: ucBooking.NewGetAvailability(repo),
		createUC:     ucBooking.NewCreateBooking(repo, dispatcher),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookRequest struct {
	ServiceIDs []uint `json:"serviceIDs" binding:"required,min=1"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`

	CustomerName  string `json:"customerName" binding:"required,min=2,max=80"`
	CustomerEmail string `json:"customerEmail" binding:"omitempty,email,max=120"`
	CustomerPhone string `json:"customerPhone" binding:"omitempty,min=5,max=30"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) ListGallery(c *gin.Context) {
	var rows []models.GalleryImage
	if err := h.db.
		Where("barber_shop_id = ?", h.cfg.ShopID).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_list_gallery", "Could not list gallery images.")
		return
	}

	out := make([]galleryImageView, 0, len(rows))
	for _, r := range rows {
		out = append(out, galleryImageView{GalleryImage: r, URL: h.media.URL(r.FilePath)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PublicHandler) GetShop(c *gin.Context) {
	var shop models.BarberShop
	if err := h.db.First(&shop, h.cfg.ShopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Barber shop not found.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if !ValidDateISO(dateStr) {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	serviceIDs := ParseIDList(c.Query("serviceIDs"))
	if len(serviceIDs) == 0 {
		httperr.BadRequest(c, "invalid_service_ids", "serviceIDs must contain at least one valid id.")
		return
	}

	if res, ok := h.cache.Get(c.Request.Context(), dateStr, serviceIDs); ok {
		c.JSON(http.StatusOK, res)
		return
	}

	res, err := h.availability.Execute(
		c.Request.Context(),
		ucBooking.AvailabilityInput{
			ShopID:     h.cfg.ShopID,
			DateISO:    dateStr,
			ServiceIDs: serviceIDs,
		},
	)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	h.cache.Set(c.Request.Context(), dateStr, serviceIDs, res)

	c.JSON(http.StatusOK, res)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !ValidDateISO(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}
	if !ValidHHMM(req.StartTime) {
		httperr.BadRequest(c, "invalid_start_time", "Start time must be HH:MM.")
		return
	}

	res, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			ShopID:        h.cfg.ShopID,
			ServiceIDs:    req.ServiceIDs,
			DateISO:       req.Date,
			StartTime:     req.StartTime,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
		},
	)

	if err != nil {
		h.mapBookingError(c, err)
		return
	}

	h.cache.InvalidateDate(c.Request.Context(), req.Date)

	c.JSON(http.StatusCreated, res)
}

func (h *PublicHandler) mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, httperr.CodeServicesNotFound):
		httperr.BadRequest(c, httperr.CodeServicesNotFound, "Selected services not found.")
	case httperr.IsBusiness(err, httperr.CodeShopClosed):
		httperr.BadRequest(c, httperr.CodeShopClosed, "Closed on selected date.")
	case httperr.IsBusiness(err, httperr.CodeOutsideHours):
		httperr.BadRequest(c, httperr.CodeOutsideHours, "Selected time is outside opening hours.")
	case httperr.IsBusiness(err, httperr.CodeDoubleBooking):
		// The caller should re-fetch availability and pick another slot.
		httperr.Conflict(c, httperr.CodeDoubleBooking, "Time slot is no longer available.")
	default:
		httperr.Internal(c, "booking_failed", "Could not create booking.")
	}
}
