package tmv1

import (
	"context"
	"log/slog"
	"time"
)

const defaultPollTimeout = 30 * time.Minute

// nowFunc is replaced in tests.
var nowFunc = time.Now

// statusResource is a resource that reports a task status.
type statusResource interface {
	TaskStatus() Status
}

// pollStatus fetches the resource until its status leaves queued/running or
// timeout has elapsed, and returns the last fetched value. Reaching the
// timeout is not an error; callers inspect the returned status. Fetches are
// issued back to back. Context cancellation ends polling with a
// TransportError.
func pollStatus[S statusResource](ctx context.Context, logger *slog.Logger, timeout time.Duration,
	fetch func(context.Context) (S, error)) (S, error) {
	start := nowFunc()
	for {
		resource, err := fetch(ctx)
		if err != nil {
			return resource, err
		}

		status := resource.TaskStatus()
		elapsed := nowFunc().Sub(start)
		if !status.Pending() {
			logger.Debug("polling finished", "status", status, "elapsed", elapsed)
			return resource, nil
		}
		if elapsed >= timeout {
			logger.Warn("polling timed out", "status", status, "timeout", timeout)
			return resource, nil
		}
		if err := ctx.Err(); err != nil {
			var zero S
			return zero, &TransportError{Err: err}
		}
		logger.Debug("task pending", "status", status, "elapsed", elapsed)
	}
}
