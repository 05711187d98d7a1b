package database

import (
	"time"

	"bazaarsetu/internal/models"
)

// PriceFilters narrows price listings
type PriceFilters struct {
	StateID     *int
	CommodityID *int
	MarketID    *int
	Category    string
}

// PricesOn retrieves all observations for a date matching the filters, with
// commodity, market and state preloaded.
func (gdb *GormDB) PricesOn(date time.Time, filters PriceFilters) ([]models.Price, error) {
	query := gdb.db.
		Preload("Commodity").
		Preload("Market").
		Preload("Market.State").
		Where("price_date = ?", dateOnly(date))

	if filters.CommodityID != nil {
		query = query.Where("commodity_id = ?", *filters.CommodityID)
	}
	if filters.MarketID != nil {
		query = query.Where("market_id = ?", *filters.MarketID)
	}
	if filters.StateID != nil {
		query = query.Where("market_id IN (?)",
			gdb.db.Model(&models.Market{}).Select("id").Where("state_id = ?", *filters.StateID))
	}
	if filters.Category != "" {
		query = query.Where("commodity_id IN (?)",
			gdb.db.Model(&models.Commodity{}).Select("id").Where("category = ?", filters.Category))
	}

	var prices []models.Price
	err := query.Find(&prices).Error
	return prices, err
}

// PricesByDate retrieves all observations for a date without preloads.
// Used for the yesterday lookup in price-change computation.
func (gdb *GormDB) PricesByDate(date time.Time) ([]models.Price, error) {
	var prices []models.Price
	err := gdb.db.Where("price_date = ?", dateOnly(date)).Find(&prices).Error
	return prices, err
}

// PricesInRange retrieves observations for a commodity inside [from, to],
// optionally restricted to one market, ordered by date ascending.
func (gdb *GormDB) PricesInRange(commodityID int, marketID *int, from, to time.Time) ([]models.Price, error) {
	query := gdb.db.
		Where("commodity_id = ? AND price_date >= ? AND price_date <= ?",
			commodityID, dateOnly(from), dateOnly(to)).
		Order("price_date ASC")

	if marketID != nil {
		query = query.Where("market_id = ?", *marketID)
	}

	var prices []models.Price
	err := query.Find(&prices).Error
	return prices, err
}

// InsertPrices inserts a batch of observations. Rows are independent; the
// batch is written in one statement but callers tolerate partial writes on
// mid-batch failure.
func (gdb *GormDB) InsertPrices(prices []models.Price) error {
	if len(prices) == 0 {
		return nil
	}
	return gdb.db.CreateInBatches(prices, 500).Error
}

// CountPrices returns the total number of stored observations
func (gdb *GormDB) CountPrices() (int64, error) {
	var count int64
	err := gdb.db.Model(&models.Price{}).Count(&count).Error
	return count, err
}

// CountPricesBefore returns the number of observations older than the
// cutoff date.
func (gdb *GormDB) CountPricesBefore(cutoff time.Time) (int64, error) {
	var count int64
	err := gdb.db.Model(&models.Price{}).Where("price_date < ?", dateOnly(cutoff)).Count(&count).Error
	return count, err
}

// DeletePricesBefore bulk-deletes observations older than the cutoff date.
// Returns the number of rows removed.
func (gdb *GormDB) DeletePricesBefore(cutoff time.Time) (int64, error) {
	result := gdb.db.Where("price_date < ?", dateOnly(cutoff)).Delete(&models.Price{})
	return result.RowsAffected, result.Error
}

// ClearPrices deletes every stored observation. Maintenance only.
func (gdb *GormDB) ClearPrices() (int64, error) {
	result := gdb.db.Where("1 = 1").Delete(&models.Price{})
	return result.RowsAffected, result.Error
}

// dateOnly truncates a timestamp to its calendar date in local time so DATE
// columns compare consistently regardless of the time-of-day component.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
