package constants

import (
	"time"
)

// Scheduling
const (
	DaysToSeedAhead = 7 // how many days ahead the occurrence generator fills
)

// Overdue reminders
const (
	// An inspection is considered overdue once its scheduled date is
	// this far in the past; the grace keeps same-day inspections quiet.
	OverdueGrace = 24 * time.Hour
)

// Profiles
const (
	ProfileCacheTTL     = 5 * time.Minute
	ProfileCacheCleanup = 10 * time.Minute
)

// CORS
const (
	CORSAllowedOriginLocalhost = "http://localhost:5173"
)
