package models

import "time"

// User is an app user. Only relevant to the core as the owner of price
// alerts and the target of alert notifications.
type User struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	Phone             *string   `gorm:"type:varchar(15);uniqueIndex" json:"phone,omitempty"`
	Email             *string   `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	FCMToken          string    `gorm:"type:varchar(500)" json:"fcm_token,omitempty"`
	PreferredLanguage string    `gorm:"type:varchar(10);not null;default:'en'" json:"preferred_language"`
	PushEnabled       bool      `gorm:"not null;default:true" json:"push_enabled"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
