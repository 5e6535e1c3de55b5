package types

import "time"

// TimeProfile is the per-call timing record threaded through every public
// operation. Every field besides Attempts is a monotonic wall-clock stamp;
// any subset may be the zero Time, meaning "not reached yet". IncomingTime
// is set by NewTimeProfile and InQueueStart keeps the first value it is
// given; every other Stamp* method (and Seal) overwrites its field with the
// latest call, so across retries those fields describe the last attempt.
type TimeProfile struct {
	IncomingTime    time.Time
	InQueueStart    time.Time
	InQueueEnd      time.Time
	ExchangeStart   time.Time
	ExchangeEnd     time.Time
	OutcomingTime   time.Time
	Attempts        int
}

// NewTimeProfile creates a profile stamped with IncomingTime = now.
func NewTimeProfile(now time.Time) *TimeProfile {
	return &TimeProfile{IncomingTime: now}
}

// StampQueueStart records the start of the first governor-wait window.
// Dispatch calls it before every attempt; only the first call takes effect.
func (tp *TimeProfile) StampQueueStart(now time.Time) {
	if tp.InQueueStart.IsZero() {
		tp.InQueueStart = now
	}
}

// StampQueueEnd records the moment the governor let the call proceed.
func (tp *TimeProfile) StampQueueEnd(now time.Time) {
	tp.InQueueEnd = now
}

// StampExchangeStart records the moment the HTTP call was issued.
func (tp *TimeProfile) StampExchangeStart(now time.Time) {
	tp.ExchangeStart = now
}

// StampExchangeEnd records the moment the HTTP call returned.
func (tp *TimeProfile) StampExchangeEnd(now time.Time) {
	tp.ExchangeEnd = now
}

// Seal records OutcomingTime and must be called exactly once, right before
// the Result is returned to the caller.
func (tp *TimeProfile) Seal(now time.Time) {
	tp.OutcomingTime = now
}

// IncrementAttempt is called by the retry classifier's Retry path.
func (tp *TimeProfile) IncrementAttempt() {
	tp.Attempts++
}

// QueueWait returns InQueueEnd - InQueueStart: the span from the first
// attempt's queue start to the latest attempt's queue end, which includes
// any exchange time and retry sleeps of earlier attempts. Dispatch does not
// use it; it keeps its own running sum of governor waits for the deadline.
func (tp *TimeProfile) QueueWait() time.Duration {
	if tp.InQueueStart.IsZero() || tp.InQueueEnd.IsZero() {
		return 0
	}
	return tp.InQueueEnd.Sub(tp.InQueueStart)
}

// TotalLatency returns OutcomingTime - IncomingTime, or 0 if not sealed yet.
func (tp *TimeProfile) TotalLatency() time.Duration {
	if tp.OutcomingTime.IsZero() {
		return 0
	}
	return tp.OutcomingTime.Sub(tp.IncomingTime)
}

// ExchangeLatency returns ExchangeEnd - ExchangeStart for the last attempt.
func (tp *TimeProfile) ExchangeLatency() time.Duration {
	if tp.ExchangeStart.IsZero() || tp.ExchangeEnd.IsZero() {
		return 0
	}
	return tp.ExchangeEnd.Sub(tp.ExchangeStart)
}
