// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"sync"
	"testing"
)

func TestCountersSnapshot(t *testing.T) {
	var c Counters
	c.Request()
	c.Request()
	c.Retry()
	c.Throttle()
	c.Failure()

	snap := c.Snapshot()
	if snap.Requests != 2 || snap.Retries != 1 || snap.Throttles != 1 || snap.Failures != 1 {
		t.Errorf("Snapshot = %+v, want {2 1 1 1}", snap)
	}
}

func TestCountersReset(t *testing.T) {
	var c Counters
	c.Request()
	c.Failure()
	c.Reset()

	if snap := c.Snapshot(); snap != (Snapshot{}) {
		t.Errorf("Snapshot after Reset = %+v, want zeroes", snap)
	}
}

func TestCountersConcurrent(t *testing.T) {
	var c Counters
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Request()
			c.Retry()
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.Requests != 50 || snap.Retries != 50 {
		t.Errorf("Snapshot = %+v, want 50 requests and retries", snap)
	}
}
