package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GalleryHandler struct {
	db    *gorm.DB
	media *media.Store
	cfg   *config.Config
}

func NewGalleryHandler(db *gorm.DB, media *media.Store, cfg *config.Config) *GalleryHandler {
	return &GalleryHandler{db: db, media: media, cfg: cfg}
}

func (h *GalleryHandler) List(c *gin.Context) {
	rows, err := h.list(c)
	if err != nil {
		httperr.Internal(c, "failed_to_list_gallery", "Could not list gallery images.")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Upload accepts multipart field "images" (one or more files) and appends
// them at the end of the sort order.
func (h *GalleryHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		httperr.BadRequest(c, "no_files", "Expected multipart field 'images'.")
		return
	}

	var maxSort int
	h.db.Model(&models.GalleryImage{}).
		Where("barber_shop_id = ?", h.cfg.ShopID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxSort)

	altText := c.PostForm("alt_text")
	if altText == "" {
		altText = "Gallery image"
	}

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "unreadable_file", "Could not read uploaded file.")
			return
		}

		key, err := h.media.Upload(c.Request.Context(), "gallery", f)
		f.Close()
		if err != nil {
			httperr.Internal(c, "upload_failed", "Could not store image.")
			return
		}

		maxSort++
		img := models.GalleryImage{
			BarberShopID: h.cfg.ShopID,
			FilePath:     key,
			AltText:      altText,
			SortOrder:    maxSort,
		}
		if err := h.db.Create(&img).Error; err != nil {
			httperr.Internal(c, "failed_to_save_image", "Could not save image record.")
			return
		}
	}

	rows, err := h.list(c)
	if err != nil {
		httperr.Internal(c, "failed_to_list_gallery", "Could not list gallery images.")
		return
	}
	c.JSON(http.StatusCreated, rows)
}

func (h *GalleryHandler) UpdateSortOrder(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_image_id", "Invalid image ID.")
		return
	}

	var req struct {
		SortOrder *int `json:"sort_order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "sort_order is required.")
		return
	}

	var img models.GalleryImage
	if err := h.db.
		Where("id = ? AND barber_shop_id = ?", id, h.cfg.ShopID).
		First(&img).Error; err != nil {

		httperr.NotFound(c, "image_not_found", "Image not found.")
		return
	}

	img.SortOrder = *req.SortOrder
	if err := h.db.Save(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_update_image", "Could not update image.")
		return
	}

	c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_image_id", "Invalid image ID.")
		return
	}

	var img models.GalleryImage
	if err := h.db.
		Where("id = ? AND barber_shop_id = ?", id, h.cfg.ShopID).
		First(&img).Error; err != nil {

		httperr.NotFound(c, "image_not_found", "Image not found.")
		return
	}

	if err := h.db.Delete(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Could not delete image.")
		return
	}

	_ = h.media.Delete(c.Request.Context(), img.FilePath)

	c.Status(http.StatusNoContent)
}

type galleryImageView struct {
	models.GalleryImage
	URL string `json:"url"`
}

func (h *GalleryHandler) list(c *gin.Context) ([]galleryImageView, error) {
	var rows []models.GalleryImage
	if err := h.db.
		Where("barber_shop_id = ?", h.cfg.ShopID).
		Order("sort_order ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]galleryImageView, 0, len(rows))
	for _, r := range rows {
		out = append(out, galleryImageView{GalleryImage: r, URL: h.media.URL(r.FilePath)})
	}
	return out, nil
}
