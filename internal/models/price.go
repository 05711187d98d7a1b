package models

import "time"

// Price is a daily price observation for a commodity at a market.
// Rows are append-only: ingestion and seeding create them, cleanup deletes
// them in bulk, nothing updates them. No uniqueness is enforced on
// (market_id, commodity_id, price_date); readers average duplicates.
type Price struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	MarketID    int       `gorm:"not null;index:idx_prices_market_date" json:"market_id"`
	CommodityID int       `gorm:"not null;index:idx_prices_commodity_date" json:"commodity_id"`
	MinPrice    float64   `gorm:"not null" json:"min_price"`
	MaxPrice    float64   `gorm:"not null" json:"max_price"`
	ModalPrice  float64   `gorm:"not null" json:"modal_price"`
	PriceDate   time.Time `gorm:"type:date;not null;index:idx_prices_market_date;index:idx_prices_commodity_date" json:"price_date"`
	FetchedAt   time.Time `gorm:"not null;autoCreateTime" json:"fetched_at"`
	Source      string    `gorm:"type:varchar(50);not null;default:'data.gov.in'" json:"source"`

	Market    *Market    `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	Commodity *Commodity `gorm:"foreignKey:CommodityID" json:"commodity,omitempty"`
}

// TableName specifies the table name
func (Price) TableName() string {
	return "prices"
}
