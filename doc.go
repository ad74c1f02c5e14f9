// Package tmv1 provides a Go client for the Trend Micro Vision One REST API
// (v3.0).
//
// # Features
//
//   - Service-based layout: alerts, endpoints, accounts, emails, objects,
//     sandbox, tasks and activity search
//   - Every call returns a Result or MultiResult, never a raw error
//   - Task and sandbox lookups poll until the task finishes
//   - Linked pages are followed with consume callbacks or Go 1.23 iterators
//   - Structured logging through log/slog, with tokens redacted
//
// # Quick Start
//
//	client, err := tmv1.NewClient(
//	    tmv1.WithAppName("my-integration"),
//	    tmv1.WithToken(token),
//	    tmv1.WithBaseURL("https://api.xdr.trendmicro.com"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := client.Endpoints.Isolate(ctx, []tmv1.EndpointTask{
//	    {EndpointName: "client1", Description: "isolated by playbook"},
//	})
//	if !res.OK() {
//	    for _, e := range res.Errors {
//	        log.Printf("status=%d code=%s message=%s", e.Status, e.Code, e.Message)
//	    }
//	}
//
// # Results
//
// Single operations return Result, batch operations return MultiResult.
// ResultCode is SUCCESS when Response is set and ERROR when Error (or
// Errors) is set. The underlying typed error is available from Err for use
// with errors.As:
//
//	res := client.Alerts.Get(ctx, alertID)
//	var apiErr *tmv1.ServerJSONError
//	if errors.As(res.Err(), &apiErr) {
//	    // apiErr.Detail.Code, apiErr.Detail.Message
//	}
//
// A batch call answered with 207 where any item failed yields one ErrorDetail
// per request item, in request order.
//
// # Tasks
//
// Response actions run asynchronously. The task ID of each accepted item is
// in MultiItem.TaskID; GetTaskResult decodes the task as a specific type:
//
//	task := tmv1.GetTaskResult[tmv1.CollectFileTaskResponse](ctx, client, taskID,
//	    tmv1.WithPollTimeout(5*time.Minute))
//
// Polling issues status requests back to back until the task leaves
// queued/running or the timeout elapses. A timeout is not an error; check
// the returned status.
//
// # Pagination
//
//	res := client.Alerts.Consume(ctx, func(a *tmv1.Alert) {
//	    fmt.Println(a.Common().ID)
//	}, &tmv1.AlertFilter{StartTime: time.Now().Add(-time.Hour)})
//
//	for alert, err := range client.Alerts.All(ctx, nil) {
//	    // ...
//	}
package tmv1
