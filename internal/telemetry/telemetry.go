// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package telemetry tracks request outcomes for one logical run. Counters
// are process-wide, safe for concurrent use, and reset between runs; they
// are reported, never persisted.
package telemetry

import "sync/atomic"

// Counters accumulates store request outcomes.
type Counters struct {
	requests  atomic.Int64
	retries   atomic.Int64
	throttles atomic.Int64
	failures  atomic.Int64
}

// Default is the process-wide counter set.
var Default = &Counters{}

// Request records one store request attempt.
func (c *Counters) Request() { c.requests.Add(1) }

// Retry records one retried request.
func (c *Counters) Retry() { c.retries.Add(1) }

// Throttle records one throttling response.
func (c *Counters) Throttle() { c.throttles.Add(1) }

// Failure records one request that exhausted its retry budget.
func (c *Counters) Failure() { c.failures.Add(1) }

// Snapshot holds a point-in-time copy of the counters.
type Snapshot struct {
	Requests  int64
	Retries   int64
	Throttles int64
	Failures  int64
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Requests:  c.requests.Load(),
		Retries:   c.retries.Load(),
		Throttles: c.throttles.Load(),
		Failures:  c.failures.Load(),
	}
}

// Reset zeroes all counters for a new run.
func (c *Counters) Reset() {
	c.requests.Store(0)
	c.retries.Store(0)
	c.throttles.Store(0)
	c.failures.Store(0)
}
