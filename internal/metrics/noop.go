package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin() {}

// IncBusinessCreated is a no-op.
func (n *NoopRecorder) IncBusinessCreated() {}

// IncLookupCacheHit is a no-op.
func (n *NoopRecorder) IncLookupCacheHit() {}

// IncLookupCacheMiss is a no-op.
func (n *NoopRecorder) IncLookupCacheMiss() {}

// ObserveLookupDuration is a no-op.
func (n *NoopRecorder) ObserveLookupDuration(duration time.Duration) {}

// IncFeedbackSubmitted is a no-op.
func (n *NoopRecorder) IncFeedbackSubmitted(rating int) {}

// IncQRRendered is a no-op.
func (n *NoopRecorder) IncQRRendered() {}
