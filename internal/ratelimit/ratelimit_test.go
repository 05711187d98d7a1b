package ratelimit

import (
	"testing"

	"bazaarsetu/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestAllowEnforcesMinuteLimit(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		RequestsPerHour:   100,
		RequestsPerDay:    100,
	})

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestAllowDisabledAlwaysPasses(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1})

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow())
	}
}

func TestAllowHourLimitIndependentOfMinute(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 100,
		RequestsPerHour:   3,
		RequestsPerDay:    100,
	})

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestGetStats(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		RequestsPerHour:   20,
		RequestsPerDay:    100,
	})

	l.Allow()
	stats := l.GetStats()

	assert.True(t, stats.Enabled)
	assert.Equal(t, 1, stats.RequestsLastMinute)
	assert.Equal(t, 1, stats.RemainingThisMinute)
	assert.Equal(t, 19, stats.RemainingThisHour)
	assert.Equal(t, 99, stats.RemainingThisDay)
}

func TestGetStatsDisabled(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{Enabled: false})

	stats := l.GetStats()
	assert.False(t, stats.Enabled)
	assert.Equal(t, 0, stats.LimitPerMinute)
}

func TestReset(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		RequestsPerHour:   1,
		RequestsPerDay:    1,
	})

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	l.Reset()
	assert.True(t, l.Allow())
}
