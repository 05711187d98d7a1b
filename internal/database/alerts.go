package database

import (
	"bazaarsetu/internal/models"
)

// CreateAlert stores a new price alert
func (gdb *GormDB) CreateAlert(alert *models.PriceAlert) error {
	return gdb.db.Create(alert).Error
}

// AlertsByUser retrieves a user's alerts, newest first, with commodity details
func (gdb *GormDB) AlertsByUser(userID int) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := gdb.db.
		Preload("Commodity").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// GetAlertForUser retrieves an alert owned by the given user
func (gdb *GormDB) GetAlertForUser(alertID, userID int) (*models.PriceAlert, error) {
	var alert models.PriceAlert
	err := gdb.db.Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// SaveAlert persists changes to an existing alert
func (gdb *GormDB) SaveAlert(alert *models.PriceAlert) error {
	return gdb.db.Save(alert).Error
}

// DeleteAlert removes an alert
func (gdb *GormDB) DeleteAlert(alert *models.PriceAlert) error {
	return gdb.db.Delete(alert).Error
}

// ActiveAlertsForCommodity retrieves active alerts watching a commodity,
// with the owning user preloaded for notification dispatch.
func (gdb *GormDB) ActiveAlertsForCommodity(commodityID int) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := gdb.db.
		Preload("User").
		Where("commodity_id = ? AND is_active = ?", commodityID, true).
		Find(&alerts).Error
	return alerts, err
}

// GetUser retrieves a user by ID
func (gdb *GormDB) GetUser(id int) (*models.User, error) {
	var user models.User
	if err := gdb.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
