package scheduler

import (
	"context"
	"fmt"
	"log"

	"bazaarsetu/internal/config"
	"bazaarsetu/internal/reconcile"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the price ingestion pipeline once a day.
type Scheduler struct {
	cron       *cron.Cron
	reconciler *reconcile.Reconciler
	config     *config.Config
	isRunning  bool
}

// NewScheduler creates a new scheduler
func NewScheduler(reconciler *reconcile.Reconciler, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		reconciler: reconciler,
		config:     cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Fetcher.DailyRunEnabled {
		log.Println("Scheduler: Daily ingestion is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Fetcher.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily price ingestion...")
		result, err := s.reconciler.Run(context.Background())
		if err != nil {
			log.Printf("Scheduler: Daily ingestion failed: %v", err)
			return
		}
		log.Printf("Scheduler: Daily ingestion completed. Added: %d, Skipped: %d, Triggered: %d",
			result.Added, result.Skipped, result.Triggered)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Fetcher.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow immediately executes an ingestion run (for manual trigger)
func (s *Scheduler) RunNow(ctx context.Context) (*reconcile.Result, error) {
	log.Println("Scheduler: Manual trigger - starting ingestion run...")
	return s.reconciler.Run(ctx)
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "07:00" -> "0 7 * * *" (run at 7:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 7:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 07:00", timeStr)
	return "0 7 * * *"
}
