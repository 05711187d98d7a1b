package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bazaarsetu/internal/alerts"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AlertHandler serves price alert CRUD endpoints
type AlertHandler struct {
	service *alerts.Service
}

// NewAlertHandler creates an alert handler
func NewAlertHandler(service *alerts.Service) *AlertHandler {
	return &AlertHandler{service: service}
}

// Create handles POST /api/alerts
func (h *AlertHandler) Create(c *gin.Context) {
	var req alerts.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	alert, err := h.service.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, alerts.ErrInvalidAlert):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// ListByUser handles GET /api/alerts/user/:user_id
func (h *AlertHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userAlerts, err := h.service.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, userAlerts)
}

// Toggle handles PUT /api/alerts/:id/toggle
func (h *AlertHandler) Toggle(c *gin.Context) {
	alertID, userID, ok := alertAndUserIDs(c)
	if !ok {
		return
	}

	alert, err := h.service.Toggle(alertID, userID)
	if err != nil {
		respondStoreError(c, err, "alert not found")
		return
	}
	c.JSON(http.StatusOK, alert)
}

// Delete handles DELETE /api/alerts/:id
func (h *AlertHandler) Delete(c *gin.Context) {
	alertID, userID, ok := alertAndUserIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(alertID, userID); err != nil {
		respondStoreError(c, err, "alert not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// alertAndUserIDs extracts the alert id path param and the user_id query
// param. Ownership checks need both.
func alertAndUserIDs(c *gin.Context) (alertID, userID int, ok bool) {
	alertID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return 0, 0, false
	}
	userID, err = strconv.Atoi(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return 0, 0, false
	}
	return alertID, userID, true
}
