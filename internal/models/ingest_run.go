package models

import "time"

// IngestRun records one execution of the price ingestion pipeline, whether
// scheduled or manually triggered. Surfaced by the admin activity endpoint.
type IngestRun struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	Source     string     `gorm:"type:varchar(50);not null" json:"source"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Fetched    int        `gorm:"not null;default:0" json:"fetched"`
	Added      int        `gorm:"not null;default:0" json:"added"`
	Skipped    int        `gorm:"not null;default:0" json:"skipped"`
	Triggered  int        `gorm:"not null;default:0" json:"triggered"`
	Error      string     `gorm:"type:text" json:"error,omitempty"`
}

// TableName specifies the table name
func (IngestRun) TableName() string {
	return "ingest_runs"
}

// Succeeded reports whether the run finished without a fatal error.
func (r *IngestRun) Succeeded() bool {
	return r.FinishedAt != nil && r.Error == ""
}
