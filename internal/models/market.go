package models

// Market is a mandi location. Created by seeding; rarely mutated afterwards.
type Market struct {
	ID         int      `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"type:varchar(200);not null;index" json:"name"`
	NameTelugu string   `gorm:"type:varchar(200)" json:"name_telugu,omitempty"`
	NameHindi  string   `gorm:"type:varchar(200)" json:"name_hindi,omitempty"`
	StateID    int      `gorm:"not null;index" json:"state_id"`
	District   string   `gorm:"type:varchar(100);not null;index" json:"district"`
	Latitude   *float64 `gorm:"type:decimal(10,6)" json:"latitude,omitempty"`
	Longitude  *float64 `gorm:"type:decimal(10,6)" json:"longitude,omitempty"`
	IsActive   bool     `gorm:"not null;default:true" json:"is_active"`

	State *State `gorm:"foreignKey:StateID" json:"state,omitempty"`
}

// TableName specifies the table name
func (Market) TableName() string {
	return "markets"
}
