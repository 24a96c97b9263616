package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type ClientRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=15"`
	LastName    string  `json:"last_name" binding:"required,max=15"`
	Email       string  `json:"email" binding:"required,email,max=50"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=15"`
	Note        *string `json:"note"`
}

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_client_id", "Invalid client ID.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	client := models.Client{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber: req.PhoneNumber,
		Note:        req.Note,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_client_id", "Invalid client ID.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))
	client.PhoneNumber = req.PhoneNumber
	client.Note = req.Note

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not update client.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_client_id", "Invalid client ID.")
		return
	}

	if err := h.db.Delete(&models.Client{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Could not delete client.")
		return
	}

	c.Status(http.StatusNoContent)
}
