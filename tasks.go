package tmv1

import "context"

// TaskService looks up the status of response tasks.
type TaskService interface {
	// Get returns the common status fields of a task. Use GetTaskResult to
	// decode the action-specific fields.
	Get(ctx context.Context, taskID string, opts ...RequestOption) Result[*BaseTaskResponse]
}

type taskService struct {
	core *core
}

func (s *taskService) Get(ctx context.Context, taskID string, opts ...RequestOption) Result[*BaseTaskResponse] {
	return taskResult[BaseTaskResponse](ctx, s.core, "Tasks.Get", taskID, opts)
}

// GetTaskResult returns a task decoded as T, for example
// CollectFileTaskResponse for a collectFile task. Unless WithPoll(false) is
// given, the task is polled until it leaves queued/running or the poll
// timeout elapses, and the last fetched state is returned.
func GetTaskResult[T any, PT interface {
	*T
	statusResource
}](ctx context.Context, c *Client, taskID string, opts ...RequestOption) Result[PT] {
	return taskResult[T, PT](ctx, c.core, "GetTaskResult", taskID, opts)
}

func taskResult[T any, PT interface {
	*T
	statusResource
}](ctx context.Context, c *core, op, taskID string, opts []RequestOption) Result[PT] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(c.logger, op, func() (PT, error) {
		if err := requireID("task ID", taskID); err != nil {
			return nil, err
		}
		fetch := func(ctx context.Context) (PT, error) {
			out, err := send[T](ctx, c, c.get(route(routeTaskResult, taskID), cfg))
			return PT(out), err
		}
		if !cfg.poll {
			return fetch(ctx)
		}
		return pollStatus(ctx, c.logger, cfg.pollTimeout, fetch)
	})
}
