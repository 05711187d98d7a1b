package database

import (
	"bazaarsetu/internal/models"
)

// CreateIngestRun stores a new ingestion run record
func (gdb *GormDB) CreateIngestRun(run *models.IngestRun) error {
	return gdb.db.Create(run).Error
}

// SaveIngestRun persists updates to an ingestion run record
func (gdb *GormDB) SaveIngestRun(run *models.IngestRun) error {
	return gdb.db.Save(run).Error
}

// RecentIngestRuns retrieves the most recent ingestion runs, newest first
func (gdb *GormDB) RecentIngestRuns(limit int) ([]models.IngestRun, error) {
	var runs []models.IngestRun
	err := gdb.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
