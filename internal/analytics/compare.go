package analytics

import (
	"fmt"
	"sort"
	"time"

	"bazaarsetu/internal/database"
	"bazaarsetu/internal/models"
)

// MarketPrice is one market's entry in a cross-market comparison.
type MarketPrice struct {
	MarketID   int     `json:"market_id"`
	MarketName string  `json:"market_name"`
	District   string  `json:"district"`
	State      string  `json:"state"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	ModalPrice float64 `json:"modal_price"`
}

// MarketComparison lists a commodity's price across markets on one date,
// cheapest first.
type MarketComparison struct {
	CommodityID   int           `json:"commodity_id"`
	CommodityName string        `json:"commodity_name"`
	PriceDate     string        `json:"price_date"`
	Markets       []MarketPrice `json:"markets"`
}

// CompareMarkets compares a commodity's price across all reporting markets
// on the given date (defaulting to today), ascending by modal price so the
// cheapest market comes first.
func (e *Engine) CompareMarkets(commodityID int, date *time.Time) (*MarketComparison, error) {
	commodity, err := e.commodityOr404(commodityID)
	if err != nil {
		return nil, err
	}

	target := e.today()
	if date != nil {
		target = *date
	}

	rows, err := e.store.PricesOn(target, database.PriceFilters{CommodityID: &commodityID})
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison prices: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no prices for commodity %d on %s: %w",
			commodityID, target.Format("2006-01-02"), ErrNoData)
	}

	// Duplicate rows for the same market are averaged, matching the
	// today listing.
	grouped := make(map[int][]models.Price)
	order := make([]int, 0, len(rows))
	for _, row := range rows {
		if _, seen := grouped[row.MarketID]; !seen {
			order = append(order, row.MarketID)
		}
		grouped[row.MarketID] = append(grouped[row.MarketID], row)
	}

	markets := make([]MarketPrice, 0, len(order))
	for _, marketID := range order {
		group := grouped[marketID]
		first := group[0]

		var minSum, maxSum, modalSum float64
		for _, row := range group {
			minSum += row.MinPrice
			maxSum += row.MaxPrice
			modalSum += row.ModalPrice
		}
		n := float64(len(group))

		entry := MarketPrice{
			MarketID:   marketID,
			MinPrice:   round2(minSum / n),
			MaxPrice:   round2(maxSum / n),
			ModalPrice: round2(modalSum / n),
		}
		if first.Market != nil {
			entry.MarketName = first.Market.Name
			entry.District = first.Market.District
			if first.Market.State != nil {
				entry.State = first.Market.State.Name
			}
		}
		markets = append(markets, entry)
	}

	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].ModalPrice < markets[j].ModalPrice
	})

	return &MarketComparison{
		CommodityID:   commodityID,
		CommodityName: commodity.Name,
		PriceDate:     target.Format("2006-01-02"),
		Markets:       markets,
	}, nil
}
