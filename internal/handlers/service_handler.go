package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	media *media.Store
}

func NewServiceHandler(db *gorm.DB, media *media.Store) *ServiceHandler {
	return &ServiceHandler{db: db, media: media}
}

// --------- Handlers ---------
//
// Create and Update take multipart/form-data so the admin UI can attach an
// image; the image runs through the media pipeline and the service keeps
// only the object key.

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service ID.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	duration, errD := strconv.Atoi(c.PostForm("duration"))
	price, errP := strconv.Atoi(c.PostForm("price"))

	if name == "" || errD != nil || errP != nil || duration <= 0 || price < 0 {
		httperr.BadRequest(c, "invalid_request", "Name, positive duration and non-negative price are required.")
		return
	}

	service := models.Service{
		Name:     name,
		Duration: duration,
		Price:    price,
	}

	if key, ok := h.uploadImage(c); ok {
		service.ImagePath = &key
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service ID.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		service.Name = name
	}
	if v := c.PostForm("duration"); v != "" {
		if duration, err := strconv.Atoi(v); err == nil && duration > 0 {
			service.Duration = duration
		}
	}
	if v := c.PostForm("price"); v != "" {
		if price, err := strconv.Atoi(v); err == nil && price >= 0 {
			service.Price = price
		}
	}

	if key, ok := h.uploadImage(c); ok {
		old := service.ImagePath
		service.ImagePath = &key
		if old != nil {
			_ = h.media.Delete(c.Request.Context(), *old)
		}
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service ID.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	if service.ImagePath != nil {
		_ = h.media.Delete(c.Request.Context(), *service.ImagePath)
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) uploadImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil || h.media == nil {
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		return "", false
	}
	defer f.Close()

	key, err := h.media.Upload(c.Request.Context(), "services", f)
	if err != nil {
		return "", false
	}
	return key, true
}
