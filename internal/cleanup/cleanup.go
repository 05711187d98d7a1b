package cleanup

import (
	"fmt"
	"log"
	"time"
)

// Store is the subset of the database layer maintenance operates on.
type Store interface {
	CountPricesBefore(cutoff time.Time) (int64, error)
	DeletePricesBefore(cutoff time.Time) (int64, error)
	ClearPrices() (int64, error)
}

// Service handles bulk deletion of old price observations. Price rows are
// the only entities cleanup ever touches; catalog and alert data are
// reference data with no retention horizon.
type Service struct {
	store Store
}

// NewService creates a new cleanup service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Config holds configuration for one cleanup run
type Config struct {
	RetentionDays    int  // Days of price history to keep
	MaxDeletionCount int  // Abort if more rows than this would go (safety limit)
	DryRun           bool // If true, only report what would be deleted
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RetentionDays:    365,
		MaxDeletionCount: 100000,
		DryRun:           false,
	}
}

// Result holds the result of a cleanup operation
type Result struct {
	TargetCount  int64     `json:"target_count"`
	DeletedCount int64     `json:"deleted_count"`
	DryRun       bool      `json:"dry_run"`
	Cutoff       string    `json:"cutoff"`
	ExecutedAt   time.Time `json:"executed_at"`
}

// PurgeOld deletes price observations older than the retention horizon.
func (s *Service) PurgeOld(cfg Config) (*Result, error) {
	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	result := &Result{
		DryRun:     cfg.DryRun,
		Cutoff:     cutoff.Format("2006-01-02"),
		ExecutedAt: time.Now(),
	}

	eligible, err := s.store.CountPricesBefore(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count prices: %w", err)
	}

	if cfg.MaxDeletionCount > 0 && eligible > int64(cfg.MaxDeletionCount) {
		return nil, fmt.Errorf("safety check failed: %d price rows exceed max deletion limit of %d",
			eligible, cfg.MaxDeletionCount)
	}
	result.TargetCount = eligible

	if cfg.DryRun {
		log.Printf("Cleanup: [DRY-RUN] would delete prices before %s", result.Cutoff)
		return result, nil
	}

	deleted, err := s.store.DeletePricesBefore(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete old prices: %w", err)
	}
	result.DeletedCount = deleted

	log.Printf("Cleanup: deleted %d price rows before %s (retention: %d days)",
		deleted, result.Cutoff, cfg.RetentionDays)
	return result, nil
}

// ClearAll deletes every price observation. Maintenance only, guarded by an
// explicit confirmation flag at the handler.
func (s *Service) ClearAll() (int64, error) {
	deleted, err := s.store.ClearPrices()
	if err != nil {
		return 0, fmt.Errorf("failed to clear prices: %w", err)
	}
	log.Printf("Cleanup: cleared all %d price rows", deleted)
	return deleted, nil
}
