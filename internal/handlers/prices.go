package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bazaarsetu/internal/analytics"
	"bazaarsetu/internal/ratelimit"
	"bazaarsetu/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// PriceHandler serves price analytics and the manual ingestion trigger
type PriceHandler struct {
	engine    *analytics.Engine
	scheduler *scheduler.Scheduler
	limiter   *ratelimit.Limiter
}

// NewPriceHandler creates a price handler
func NewPriceHandler(engine *analytics.Engine, sched *scheduler.Scheduler, limiter *ratelimit.Limiter) *PriceHandler {
	return &PriceHandler{
		engine:    engine,
		scheduler: sched,
		limiter:   limiter,
	}
}

// GetToday handles GET /api/prices/today
func (h *PriceHandler) GetToday(c *gin.Context) {
	query := analytics.TodayQuery{
		Category:  c.Query("category"),
		SortBy:    c.DefaultQuery("sort_by", "name"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
		Page:      1,
		PageSize:  100,
	}

	if stateIDStr := c.Query("state_id"); stateIDStr != "" {
		stateID, err := strconv.Atoi(stateIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state_id"})
			return
		}
		query.StateID = &stateID
	}
	if commodityIDStr := c.Query("commodity_id"); commodityIDStr != "" {
		commodityID, err := strconv.Atoi(commodityIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commodity_id"})
			return
		}
		query.CommodityID = &commodityID
	}
	if marketIDStr := c.Query("market_id"); marketIDStr != "" {
		marketID, err := strconv.Atoi(marketIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market_id"})
			return
		}
		query.MarketID = &marketID
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			query.Page = page
		}
	}
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			query.PageSize = size
		}
	}

	result, err := h.engine.TodayPrices(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTrend handles GET /api/prices/trend/:commodity_id
func (h *PriceHandler) GetTrend(c *gin.Context) {
	commodityID, err := strconv.Atoi(c.Param("commodity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commodity id"})
		return
	}

	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		days, err = strconv.Atoi(daysStr)
		if err != nil || days < 7 || days > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 7 and 365"})
			return
		}
	}

	var marketID *int
	if marketIDStr := c.Query("market_id"); marketIDStr != "" {
		id, err := strconv.Atoi(marketIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid market_id"})
			return
		}
		marketID = &id
	}

	trend, err := h.engine.Trend(commodityID, marketID, days)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// CompareMarkets handles GET /api/prices/compare/:commodity_id
func (h *PriceHandler) CompareMarkets(c *gin.Context) {
	commodityID, err := strconv.Atoi(c.Param("commodity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commodity id"})
		return
	}

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	comparison, err := h.engine.CompareMarkets(commodityID, date)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// SearchCommodities handles GET /api/prices/search
func (h *PriceHandler) SearchCommodities(c *gin.Context) {
	q := c.Query("q")
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 2 characters"})
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
			return
		}
		limit = parsed
	}

	results, err := h.engine.SearchCommodities(q, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// TriggerFetch handles POST /api/prices/fetch
func (h *PriceHandler) TriggerFetch(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "fetch rate limit exceeded",
			"stats": h.limiter.GetStats(),
		})
		return
	}

	result, err := h.scheduler.RunNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.engine.InvalidateCache()
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"result": result,
	})
}

// GetRateLimitStats handles GET /api/ratelimit/stats
func (h *PriceHandler) GetRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.limiter.GetStats())
}

func respondAnalyticsError(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
