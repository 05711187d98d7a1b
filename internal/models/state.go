package models

// State is immutable reference data for the Indian states covered by the app.
type State struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	NameTelugu string `gorm:"type:varchar(100)" json:"name_telugu,omitempty"`
	NameHindi  string `gorm:"type:varchar(100)" json:"name_hindi,omitempty"`
	Code       string `gorm:"type:varchar(10);not null;uniqueIndex" json:"code"`
}

// TableName specifies the table name
func (State) TableName() string {
	return "states"
}
