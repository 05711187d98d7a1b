package ratelimit

import (
	"sync"
	"time"

	"bazaarsetu/internal/config"
)

// Limiter enforces sliding-window limits on manual price-fetch triggers so
// a misbehaving client cannot hammer the upstream government API.
type Limiter struct {
	perMinute int
	perHour   int
	perDay    int
	enabled   bool

	minuteWindow []time.Time
	hourWindow   []time.Time
	dayWindow    []time.Time
	mu           sync.Mutex
}

// NewLimiter creates a limiter from configuration
func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		perMinute: cfg.RequestsPerMinute,
		perHour:   cfg.RequestsPerHour,
		perDay:    cfg.RequestsPerDay,
		enabled:   cfg.Enabled,
	}
}

// Allow checks whether another fetch trigger is permitted and records it
// when it is.
func (l *Limiter) Allow() bool {
	if !l.enabled {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.cleanup(now)

	if l.perMinute > 0 && len(l.minuteWindow) >= l.perMinute {
		return false
	}
	if l.perHour > 0 && len(l.hourWindow) >= l.perHour {
		return false
	}
	if l.perDay > 0 && len(l.dayWindow) >= l.perDay {
		return false
	}

	l.minuteWindow = append(l.minuteWindow, now)
	l.hourWindow = append(l.hourWindow, now)
	l.dayWindow = append(l.dayWindow, now)

	return true
}

// cleanup removes expired entries from the time windows
func (l *Limiter) cleanup(now time.Time) {
	l.minuteWindow = filterTimes(l.minuteWindow, now.Add(-1*time.Minute))
	l.hourWindow = filterTimes(l.hourWindow, now.Add(-1*time.Hour))
	l.dayWindow = filterTimes(l.dayWindow, now.Add(-24*time.Hour))
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := make([]time.Time, 0, len(times))
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// Stats contains limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	RequestsLastMinute  int  `json:"requests_last_minute"`
	RequestsLastHour    int  `json:"requests_last_hour"`
	RequestsLastDay     int  `json:"requests_last_day"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	LimitPerDay         int  `json:"limit_per_day"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
	RemainingThisDay    int  `json:"remaining_this_day"`
}

// GetStats returns current limiter statistics
func (l *Limiter) GetStats() Stats {
	if !l.enabled {
		return Stats{Enabled: false}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cleanup(time.Now())

	return Stats{
		Enabled:             true,
		RequestsLastMinute:  len(l.minuteWindow),
		RequestsLastHour:    len(l.hourWindow),
		RequestsLastDay:     len(l.dayWindow),
		LimitPerMinute:      l.perMinute,
		LimitPerHour:        l.perHour,
		LimitPerDay:         l.perDay,
		RemainingThisMinute: max(0, l.perMinute-len(l.minuteWindow)),
		RemainingThisHour:   max(0, l.perHour-len(l.hourWindow)),
		RemainingThisDay:    max(0, l.perDay-len(l.dayWindow)),
	}
}

// Reset clears all tracked requests (useful for testing)
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.minuteWindow = nil
	l.hourWindow = nil
	l.dayWindow = nil
}
