// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package objstore

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"

	"github.com/pdiddy/meca-fetch/internal/telemetry"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// failed store requests. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// maxAttempts caps the retry budget for every store operation.
const maxAttempts = 3

// throttleCodes are API error codes counted as throttling rather than
// plain transient failures.
var throttleCodes = map[string]bool{
	"Throttling":               true,
	"ThrottlingException":      true,
	"RequestLimitExceeded":     true,
	"SlowDown":                 true,
	"TooManyRequestsException": true,
}

// withRetry executes op up to maxAttempts times with exponential backoff,
// doubling the delay each attempt. All error kinds are retried uniformly;
// classification happens only in the telemetry counters. The last error is
// returned after the budget is spent, and the caller decides whether that
// is fatal (for index building it never is).
func withRetry(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			telemetry.Default.Retry()
			backoff := time.Duration(1<<uint(attempt-1)) * RetryBaseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		telemetry.Default.Request()
		err = op(ctx)
		if err == nil {
			return nil
		}
		if isThrottle(err) {
			telemetry.Default.Throttle()
		}
	}

	telemetry.Default.Failure()
	return err
}

func isThrottle(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && throttleCodes[apiErr.ErrorCode()]
}
