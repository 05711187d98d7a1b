package analytics

import (
	"fmt"
	"sort"
	"strings"

	"bazaarsetu/internal/database"
	"bazaarsetu/internal/models"
)

// PriceView is one row of the today's-prices listing, denormalized for the
// API response.
type PriceView struct {
	CommodityID        int      `json:"commodity_id"`
	CommodityName      string   `json:"commodity_name"`
	CommodityNameTelugu string  `json:"commodity_name_telugu,omitempty"`
	CommodityNameHindi string   `json:"commodity_name_hindi,omitempty"`
	CommodityImage     string   `json:"commodity_image,omitempty"`
	Unit               string   `json:"unit"`
	MarketID           int      `json:"market_id"`
	MarketName         string   `json:"market_name"`
	District           string   `json:"district"`
	StateName          string   `json:"state_name"`
	MinPrice           float64  `json:"min_price"`
	MaxPrice           float64  `json:"max_price"`
	ModalPrice         float64  `json:"modal_price"`
	PriceDate          string   `json:"price_date"`
	PriceChange        *float64 `json:"price_change,omitempty"`
}

// TodayQuery holds the filters, sorting and pagination of a today's-prices
// request. Page numbering starts at 1.
type TodayQuery struct {
	StateID     *int
	CommodityID *int
	MarketID    *int
	Category    string
	SortBy      string // name, price, change
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

// TodayResult is a page of PriceViews plus the total before pagination.
type TodayResult struct {
	Prices   []PriceView `json:"prices"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

type pairKey struct {
	commodityID int
	marketID    int
}

// TodayPrices lists today's observations with a day-over-day change percent
// where yesterday has a comparable positive value. Duplicate rows for the
// same (market, commodity) are averaged before comparison.
func (e *Engine) TodayPrices(q TodayQuery) (*TodayResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 50
	}
	if q.PageSize > 200 {
		q.PageSize = 200
	}

	cacheKey := fmt.Sprintf("today:%v:%v:%v:%s:%s:%s:%d:%d",
		q.StateID, q.CommodityID, q.MarketID, q.Category, q.SortBy, q.SortOrder, q.Page, q.PageSize)
	if cached, ok := e.cache.Get(cacheKey); ok {
		return cached.(*TodayResult), nil
	}

	today := e.today()
	rows, err := e.store.PricesOn(today, database.PriceFilters{
		StateID:     q.StateID,
		CommodityID: q.CommodityID,
		MarketID:    q.MarketID,
		Category:    strings.ToLower(q.Category),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load today's prices: %w", err)
	}

	yesterdayRows, err := e.store.PricesByDate(today.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to load yesterday's prices: %w", err)
	}
	yesterdayModal := averageModalByPair(yesterdayRows)

	views := buildViews(rows, yesterdayModal)
	sortViews(views, q.SortBy, q.SortOrder)

	total := len(views)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	result := &TodayResult{
		Prices:   views[start:end],
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	e.cache.SetDefault(cacheKey, result)
	return result, nil
}

// averageModalByPair averages modal prices per (commodity, market) pair,
// collapsing duplicate-date rows.
func averageModalByPair(rows []models.Price) map[pairKey]float64 {
	sums := make(map[pairKey]float64)
	counts := make(map[pairKey]int)
	for _, row := range rows {
		key := pairKey{row.CommodityID, row.MarketID}
		sums[key] += row.ModalPrice
		counts[key]++
	}

	averages := make(map[pairKey]float64, len(sums))
	for key, sum := range sums {
		averages[key] = sum / float64(counts[key])
	}
	return averages
}

func buildViews(rows []models.Price, yesterdayModal map[pairKey]float64) []PriceView {
	// Collapse duplicates, keeping the preloaded associations of the first
	// row seen for each pair.
	grouped := make(map[pairKey][]models.Price)
	order := make([]pairKey, 0, len(rows))
	for _, row := range rows {
		key := pairKey{row.CommodityID, row.MarketID}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], row)
	}

	views := make([]PriceView, 0, len(order))
	for _, key := range order {
		group := grouped[key]
		first := group[0]

		var minSum, maxSum, modalSum float64
		for _, row := range group {
			minSum += row.MinPrice
			maxSum += row.MaxPrice
			modalSum += row.ModalPrice
		}
		n := float64(len(group))

		view := PriceView{
			CommodityID: key.commodityID,
			MarketID:    key.marketID,
			MinPrice:    round2(minSum / n),
			MaxPrice:    round2(maxSum / n),
			ModalPrice:  round2(modalSum / n),
			PriceDate:   first.PriceDate.Format("2006-01-02"),
		}
		if first.Commodity != nil {
			view.CommodityName = first.Commodity.Name
			view.CommodityNameTelugu = first.Commodity.NameTelugu
			view.CommodityNameHindi = first.Commodity.NameHindi
			view.CommodityImage = first.Commodity.ImageURL
			view.Unit = first.Commodity.Unit
		}
		if first.Market != nil {
			view.MarketName = first.Market.Name
			view.District = first.Market.District
			if first.Market.State != nil {
				view.StateName = first.Market.State.Name
			}
		}

		// No comparable prior-day observation means no change, never a
		// misleading zero.
		if prior, ok := yesterdayModal[key]; ok && prior > 0 {
			view.PriceChange = percentChange(prior, view.ModalPrice)
		}

		views = append(views, view)
	}
	return views
}

func sortViews(views []PriceView, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	var less func(i, j int) bool
	switch strings.ToLower(sortBy) {
	case "price":
		less = func(i, j int) bool { return views[i].ModalPrice < views[j].ModalPrice }
	case "change":
		// Rows without a change sort last regardless of direction.
		less = func(i, j int) bool {
			ci, cj := views[i].PriceChange, views[j].PriceChange
			if ci == nil && cj == nil {
				return views[i].CommodityName < views[j].CommodityName
			}
			if ci == nil {
				return false
			}
			if cj == nil {
				return true
			}
			if desc {
				return *ci > *cj
			}
			return *ci < *cj
		}
		sort.SliceStable(views, less)
		return
	default:
		less = func(i, j int) bool { return views[i].CommodityName < views[j].CommodityName }
	}

	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(views, less)
}
