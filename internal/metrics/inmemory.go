package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups             uint64
	Logins              uint64
	BusinessesCreated   uint64
	LookupCacheHits     uint64
	LookupCacheMisses   uint64
	LookupDurationCount uint64
	LookupDurationNs    int64
	FeedbackSubmitted   uint64
	LowRatingFeedback   uint64
	QRRendered          uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	signups             uint64
	logins              uint64
	businessesCreated   uint64
	lookupCacheHits     uint64
	lookupCacheMisses   uint64
	lookupDurationCount uint64
	lookupDurationNs    int64
	feedbackSubmitted   uint64
	lowRatingFeedback   uint64
	qrRendered          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:             atomic.LoadUint64(&m.signups),
		Logins:              atomic.LoadUint64(&m.logins),
		BusinessesCreated:   atomic.LoadUint64(&m.businessesCreated),
		LookupCacheHits:     atomic.LoadUint64(&m.lookupCacheHits),
		LookupCacheMisses:   atomic.LoadUint64(&m.lookupCacheMisses),
		LookupDurationCount: atomic.LoadUint64(&m.lookupDurationCount),
		LookupDurationNs:    atomic.LoadInt64(&m.lookupDurationNs),
		FeedbackSubmitted:   atomic.LoadUint64(&m.feedbackSubmitted),
		LowRatingFeedback:   atomic.LoadUint64(&m.lowRatingFeedback),
		QRRendered:          atomic.LoadUint64(&m.qrRendered),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counter.
func (m *InMemoryRecorder) IncLogin() {
	atomic.AddUint64(&m.logins, 1)
}

// IncBusinessCreated increments the business created counter.
func (m *InMemoryRecorder) IncBusinessCreated() {
	atomic.AddUint64(&m.businessesCreated, 1)
}

// IncLookupCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncLookupCacheHit() {
	atomic.AddUint64(&m.lookupCacheHits, 1)
}

// IncLookupCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncLookupCacheMiss() {
	atomic.AddUint64(&m.lookupCacheMisses, 1)
}

// ObserveLookupDuration records public lookup duration.
func (m *InMemoryRecorder) ObserveLookupDuration(duration time.Duration) {
	atomic.AddUint64(&m.lookupDurationCount, 1)
	atomic.AddInt64(&m.lookupDurationNs, duration.Nanoseconds())
}

// IncFeedbackSubmitted increments the feedback counter, tracking low
// ratings separately.
func (m *InMemoryRecorder) IncFeedbackSubmitted(rating int) {
	atomic.AddUint64(&m.feedbackSubmitted, 1)
	if rating < 4 {
		atomic.AddUint64(&m.lowRatingFeedback, 1)
	}
}

// IncQRRendered increments the QR render counter.
func (m *InMemoryRecorder) IncQRRendered() {
	atomic.AddUint64(&m.qrRendered, 1)
}
