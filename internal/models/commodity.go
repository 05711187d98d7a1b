package models

// CommodityCategory groups commodities for filtering.
type CommodityCategory string

const (
	CategoryVegetable CommodityCategory = "vegetable"
	CategoryLeafy     CommodityCategory = "leafy"
	CategorySpice     CommodityCategory = "spice"
	CategoryFruit     CommodityCategory = "fruit"
	CategoryPoultry   CommodityCategory = "poultry"
)

// Commodity is a catalog entry for a vegetable or other traded item.
// Created by seeding; ingestion never adds commodities.
type Commodity struct {
	ID         int               `gorm:"primaryKey" json:"id"`
	Name       string            `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	NameTelugu string            `gorm:"type:varchar(100)" json:"name_telugu,omitempty"`
	NameHindi  string            `gorm:"type:varchar(100)" json:"name_hindi,omitempty"`
	Category   CommodityCategory `gorm:"type:varchar(50);not null;default:'vegetable';index" json:"category"`
	Unit       string            `gorm:"type:varchar(20);not null;default:'kg'" json:"unit"`
	ImageURL   string            `gorm:"type:varchar(500)" json:"image_url,omitempty"`
}

// TableName specifies the table name
func (Commodity) TableName() string {
	return "commodities"
}
