package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"bazaarsetu/internal/cleanup"
	"bazaarsetu/internal/database"
	"bazaarsetu/internal/models"
	"bazaarsetu/internal/search"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	db             *database.GormDB
	cleanupService *cleanup.Service
	index          *search.CommodityIndex
	cleanupConfig  cleanup.Config
}

// NewAdminHandler creates a new admin handler. index may be nil when
// Meilisearch is not configured.
func NewAdminHandler(db *database.GormDB, index *search.CommodityIndex, cleanupConfig cleanup.Config) *AdminHandler {
	return &AdminHandler{
		db:             db,
		cleanupService: cleanup.NewService(db),
		index:          index,
		cleanupConfig:  cleanupConfig,
	}
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})
	gdb := h.db.DB()

	var stateCount, marketCount, commodityCount int64
	gdb.Model(&models.State{}).Count(&stateCount)
	gdb.Model(&models.Market{}).Count(&marketCount)
	gdb.Model(&models.Commodity{}).Count(&commodityCount)
	stats["catalog"] = map[string]interface{}{
		"states":      stateCount,
		"markets":     marketCount,
		"commodities": commodityCount,
	}

	priceCount, err := h.db.CountPrices()
	if err != nil {
		log.Printf("Admin: failed to count prices: %v", err)
	}
	last24h := time.Now().AddDate(0, 0, -1)
	var recentlyFetched int64
	gdb.Model(&models.Price{}).Where("fetched_at >= ?", last24h).Count(&recentlyFetched)
	stats["prices"] = map[string]interface{}{
		"total":            priceCount,
		"fetched_last_24h": recentlyFetched,
	}

	var activeAlerts, totalAlerts int64
	gdb.Model(&models.PriceAlert{}).Count(&totalAlerts)
	gdb.Model(&models.PriceAlert{}).Where("is_active = ?", true).Count(&activeAlerts)
	stats["alerts"] = map[string]interface{}{
		"total":  totalAlerts,
		"active": activeAlerts,
	}

	c.JSON(http.StatusOK, stats)
}

// GetActivity returns recent ingestion runs
func (h *AdminHandler) GetActivity(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, _ := strconv.Atoi(limitStr)
	if limit < 1 {
		limit = 50
	}

	runs, err := h.db.RecentIngestRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// RunCleanup triggers a price retention cleanup. Pass dry_run=true to only
// report, or clear_all=true (with confirm=yes) to wipe all price data.
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	if c.Query("clear_all") == "true" {
		if c.Query("confirm") != "yes" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clear_all requires confirm=yes"})
			return
		}
		deleted, err := h.cleanupService.ClearAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
		return
	}

	cfg := h.cleanupConfig
	cfg.DryRun = c.Query("dry_run") == "true"
	if daysStr := c.Query("retention_days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			cfg.RetentionDays = days
		}
	}

	result, err := h.cleanupService.PurgeOld(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reindex rebuilds the commodity search index from the catalog
func (h *AdminHandler) Reindex(c *gin.Context) {
	if h.index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search index is not configured"})
		return
	}

	commodities, err := h.db.AllCommodities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.index.IndexCommodities(commodities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"indexed": len(commodities)})
}
