package database

import (
	"strings"

	"bazaarsetu/internal/models"
)

// ListStates retrieves all states ordered by name
func (gdb *GormDB) ListStates() ([]models.State, error) {
	var states []models.State
	err := gdb.db.Order("name ASC").Find(&states).Error
	return states, err
}

// GetState retrieves a state by ID
func (gdb *GormDB) GetState(id int) (*models.State, error) {
	var state models.State
	if err := gdb.db.First(&state, id).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// MarketFilters narrows market listings
type MarketFilters struct {
	StateID    *int
	District   string
	OnlyActive bool
}

// ListMarkets retrieves markets matching the given filters, with their state
func (gdb *GormDB) ListMarkets(filters MarketFilters) ([]models.Market, error) {
	query := gdb.db.Preload("State").Order("name ASC")
	if filters.StateID != nil {
		query = query.Where("state_id = ?", *filters.StateID)
	}
	if filters.District != "" {
		query = query.Where("LOWER(district) = ?", strings.ToLower(filters.District))
	}
	if filters.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var markets []models.Market
	err := query.Find(&markets).Error
	return markets, err
}

// GetMarket retrieves a market by ID with its state
func (gdb *GormDB) GetMarket(id int) (*models.Market, error) {
	var market models.Market
	if err := gdb.db.Preload("State").First(&market, id).Error; err != nil {
		return nil, err
	}
	return &market, nil
}

// AllMarkets retrieves every market without preloads. Used as the
// reconciliation catalog.
func (gdb *GormDB) AllMarkets() ([]models.Market, error) {
	var markets []models.Market
	err := gdb.db.Order("id ASC").Find(&markets).Error
	return markets, err
}

// ListCommodities retrieves commodities, optionally filtered by category
func (gdb *GormDB) ListCommodities(category string) ([]models.Commodity, error) {
	query := gdb.db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", strings.ToLower(category))
	}

	var commodities []models.Commodity
	err := query.Find(&commodities).Error
	return commodities, err
}

// GetCommodity retrieves a commodity by ID
func (gdb *GormDB) GetCommodity(id int) (*models.Commodity, error) {
	var commodity models.Commodity
	if err := gdb.db.First(&commodity, id).Error; err != nil {
		return nil, err
	}
	return &commodity, nil
}

// AllCommodities retrieves every commodity. Used as the reconciliation catalog.
func (gdb *GormDB) AllCommodities() ([]models.Commodity, error) {
	var commodities []models.Commodity
	err := gdb.db.Order("id ASC").Find(&commodities).Error
	return commodities, err
}

// SearchCommodities performs a case-insensitive substring search over the
// canonical and regional names.
func (gdb *GormDB) SearchCommodities(q string, limit int) ([]models.Commodity, error) {
	pattern := "%" + strings.ToLower(q) + "%"

	var commodities []models.Commodity
	err := gdb.db.
		Where("LOWER(name) LIKE ? OR LOWER(name_telugu) LIKE ? OR LOWER(name_hindi) LIKE ?",
			pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&commodities).Error
	return commodities, err
}
