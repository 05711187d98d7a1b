package analytics

import (
	"fmt"
	"sort"
)

// TrendPoint is one daily point of a price trend series.
type TrendPoint struct {
	Date       string  `json:"date"`
	ModalPrice float64 `json:"modal_price"`
}

// PriceTrend is the historical trend of a commodity over a day window.
type PriceTrend struct {
	CommodityID    int          `json:"commodity_id"`
	CommodityName  string       `json:"commodity_name"`
	MarketID       *int         `json:"market_id,omitempty"`
	MarketName     string       `json:"market_name,omitempty"`
	TrendData      []TrendPoint `json:"trend_data"`
	AvgPrice       float64      `json:"avg_price"`
	MinPrice       float64      `json:"min_price"`
	MaxPrice       float64      `json:"max_price"`
	PriceChange7d  *float64     `json:"price_change_7d,omitempty"`
	PriceChange30d *float64     `json:"price_change_30d,omitempty"`
}

// Trend computes the trend for a commodity over [today-days, today]. With no
// market given, each day's point is the mean of modal prices across the
// markets reporting that day; days without observations produce no point.
//
// The 7-day and 30-day changes index into the aggregated point series (7th
// point from the end, first point) rather than looking up calendar offsets.
// Mandi reporting is sparse enough that calendar-exact offsets would mostly
// find nothing, so the positional interpretation is intentional.
func (e *Engine) Trend(commodityID int, marketID *int, days int) (*PriceTrend, error) {
	commodity, err := e.commodityOr404(commodityID)
	if err != nil {
		return nil, err
	}

	to := e.today()
	from := to.AddDate(0, 0, -days)

	rows, err := e.store.PricesInRange(commodityID, marketID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load price window: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no prices for commodity %d in the last %d days: %w", commodityID, days, ErrNoData)
	}

	// Aggregate by date: mean of modal prices that day.
	daySums := make(map[string]float64)
	dayCounts := make(map[string]int)
	var sum, min, max float64
	min = rows[0].ModalPrice
	max = rows[0].ModalPrice
	for _, row := range rows {
		day := row.PriceDate.Format("2006-01-02")
		daySums[day] += row.ModalPrice
		dayCounts[day]++

		sum += row.ModalPrice
		if row.ModalPrice < min {
			min = row.ModalPrice
		}
		if row.ModalPrice > max {
			max = row.ModalPrice
		}
	}

	dayKeys := make([]string, 0, len(daySums))
	for day := range daySums {
		dayKeys = append(dayKeys, day)
	}
	sort.Strings(dayKeys)

	points := make([]TrendPoint, 0, len(dayKeys))
	for _, day := range dayKeys {
		points = append(points, TrendPoint{
			Date:       day,
			ModalPrice: round2(daySums[day] / float64(dayCounts[day])),
		})
	}

	trend := &PriceTrend{
		CommodityID:   commodityID,
		CommodityName: commodity.Name,
		MarketID:      marketID,
		TrendData:     points,
		// Average over individual observations, not daily points; the two
		// differ when markets report unevenly.
		AvgPrice: round2(sum / float64(len(rows))),
		MinPrice: min,
		MaxPrice: max,
	}

	if marketID != nil {
		if market, err := e.store.GetMarket(*marketID); err == nil {
			trend.MarketName = market.Name
		}
	}

	latest := points[len(points)-1].ModalPrice
	if len(points) >= 7 {
		trend.PriceChange7d = percentChange(points[len(points)-7].ModalPrice, latest)
	}
	if len(points) >= 30 {
		trend.PriceChange30d = percentChange(points[0].ModalPrice, latest)
	}

	return trend, nil
}
