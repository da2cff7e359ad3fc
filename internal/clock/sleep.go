// Package clock provides cancellable time helpers for the update loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for the given duration, returning early with the
// context's error if it is canceled first. Background timers built on it
// shut down cleanly with the process.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UTCNow returns the current instant in UTC. All bucket keys and day-status
// decisions are evaluated against UTC time.
func UTCNow() time.Time {
	return time.Now().UTC()
}
