package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bazaarsetu/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogHandler serves the states/markets/commodities reference data
type CatalogHandler struct {
	db *database.GormDB
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(db *database.GormDB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListStates handles GET /api/states
func (h *CatalogHandler) ListStates(c *gin.Context) {
	states, err := h.db.ListStates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, states)
}

// GetState handles GET /api/states/:id
func (h *CatalogHandler) GetState(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
		return
	}

	state, err := h.db.GetState(id)
	if err != nil {
		respondStoreError(c, err, "state not found")
		return
	}
	c.JSON(http.StatusOK, state)
}

// ListStateMarkets handles GET /api/states/:id/markets
func (h *CatalogHandler) ListStateMarkets(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state id"})
		return
	}
	if _, err := h.db.GetState(id); err != nil {
		respondStoreError(c, err, "state not found")
		return
	}

	markets, err := h.db.ListMarkets(database.MarketFilters{StateID: &id, OnlyActive: true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, markets)
}

// ListMarkets handles GET /api/markets with optional state_id/district filters
func (h *CatalogHandler) ListMarkets(c *gin.Context) {
	filters := database.MarketFilters{
		District:   c.Query("district"),
		OnlyActive: c.DefaultQuery("include_inactive", "false") != "true",
	}
	if stateIDStr := c.Query("state_id"); stateIDStr != "" {
		stateID, err := strconv.Atoi(stateIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state_id"})
			return
		}
		filters.StateID = &stateID
	}

	markets, err := h.db.ListMarkets(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, markets)
}

// GetMarket handles GET /api/markets/:id
func (h *CatalogHandler) GetMarket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market id"})
		return
	}

	market, err := h.db.GetMarket(id)
	if err != nil {
		respondStoreError(c, err, "market not found")
		return
	}
	c.JSON(http.StatusOK, market)
}

// ListCommodities handles GET /api/commodities with optional category filter
func (h *CatalogHandler) ListCommodities(c *gin.Context) {
	commodities, err := h.db.ListCommodities(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, commodities)
}

// GetCommodity handles GET /api/commodities/:id
func (h *CatalogHandler) GetCommodity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commodity id"})
		return
	}

	commodity, err := h.db.GetCommodity(id)
	if err != nil {
		respondStoreError(c, err, "commodity not found")
		return
	}
	c.JSON(http.StatusOK, commodity)
}

// respondStoreError maps a missing row to 404 and everything else to 500.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
