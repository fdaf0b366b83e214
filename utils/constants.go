package utils

import (
	"time"

	"mentora/config"
)

// Defaults for the two domain invariants; used when config has not been
// loaded (pure helpers, unit tests).
const (
	DefaultSessionMinutes  = 50
	DefaultPlatformFeeRate = 0.10
)

// AvailabilityCacheTTL bounds how stale a cached availability response
// can get even without an explicit invalidation.
const AvailabilityCacheTTL = 60 * time.Second

// SessionMinutes returns the fixed consultation length in minutes.
func SessionMinutes() int {
	if m := config.AppConfig.SessionDurationMin; m > 0 {
		return m
	}
	return DefaultSessionMinutes
}

// SessionDuration returns the fixed consultation length.
func SessionDuration() time.Duration {
	return time.Duration(SessionMinutes()) * time.Minute
}

// PlatformFeeRate returns the platform's cut of every session payment.
func PlatformFeeRate() float64 {
	if r := config.AppConfig.PlatformFeeRate; r > 0 {
		return r
	}
	return DefaultPlatformFeeRate
}
