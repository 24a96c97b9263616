package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ShopHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewShopHandler(db *gorm.DB, cfg *config.Config) *ShopHandler {
	return &ShopHandler{db: db, cfg: cfg}
}

type UpdateShopRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=15"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
	Street      *string `json:"street" binding:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code" binding:"omitempty,max=4"`
	Description *string `json:"description"`
}

func (h *ShopHandler) Get(c *gin.Context) {
	var shop models.BarberShop
	if err := h.db.First(&shop, h.cfg.ShopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Barber shop not found.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	var shop models.BarberShop
	if err := h.db.First(&shop, h.cfg.ShopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Barber shop not found.")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		shop.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Street != nil {
		shop.Street = *req.Street
	}
	if req.PostalCode != nil {
		shop.PostalCode = *req.PostalCode
	}
	if req.Description != nil {
		shop.Description = req.Description
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update barber shop.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
