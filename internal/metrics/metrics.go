// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncSignup()
	IncLogin()

	// Business registry metrics
	IncBusinessCreated()

	// Public lookup metrics (the scan hot path)
	IncLookupCacheHit()
	IncLookupCacheMiss()
	ObserveLookupDuration(duration time.Duration)

	// Feedback metrics
	IncFeedbackSubmitted(rating int)

	// QR rendering metrics
	IncQRRendered()
}
