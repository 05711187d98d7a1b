package models

import "time"

// AlertDirection is the trigger direction of a price alert.
type AlertDirection string

const (
	AlertBelow AlertDirection = "below"
	AlertAbove AlertDirection = "above"
)

// PriceAlert is a user-configured threshold on a commodity's modal price.
// MarketID nil means the alert applies to any market. Triggering updates
// LastTriggered but never deactivates the alert.
type PriceAlert struct {
	ID             int            `gorm:"primaryKey" json:"id"`
	UserID         int            `gorm:"not null;index" json:"user_id"`
	CommodityID    int            `gorm:"not null;index" json:"commodity_id"`
	MarketID       *int           `json:"market_id,omitempty"`
	ThresholdPrice float64        `gorm:"not null" json:"threshold_price"`
	Direction      AlertDirection `gorm:"type:varchar(20);not null;default:'below'" json:"direction"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	LastTriggered  *time.Time     `json:"last_triggered,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Commodity *Commodity `gorm:"foreignKey:CommodityID" json:"commodity,omitempty"`
}

// TableName specifies the table name
func (PriceAlert) TableName() string {
	return "price_alerts"
}

// Matches reports whether an observation at the given market satisfies the
// alert's scope and threshold condition. Both boundaries are inclusive.
func (a *PriceAlert) Matches(marketID int, modalPrice float64) bool {
	if !a.IsActive {
		return false
	}
	if a.MarketID != nil && *a.MarketID != marketID {
		return false
	}
	switch a.Direction {
	case AlertBelow:
		return modalPrice <= a.ThresholdPrice
	case AlertAbove:
		return modalPrice >= a.ThresholdPrice
	}
	return false
}
