package tmv1

import (
	"context"
	"iter"
	"net/http"

	"github.com/tphakala/go-tmv1/internal/api"
)

// EndpointService provides endpoint response actions and endpoint queries.
type EndpointService interface {
	// Isolate disconnects endpoints from the network.
	Isolate(ctx context.Context, tasks []EndpointTask, opts ...RequestOption) MultiResult[*MultiResponse]

	// Restore reconnects isolated endpoints.
	Restore(ctx context.Context, tasks []EndpointTask, opts ...RequestOption) MultiResult[*MultiResponse]

	// CollectFile collects files from endpoints for analysis.
	CollectFile(ctx context.Context, tasks []FileTask, opts ...RequestOption) MultiResult[*MultiResponse]

	// TerminateProcess terminates processes running on endpoints.
	TerminateProcess(ctx context.Context, tasks []ProcessTask, opts ...RequestOption) MultiResult[*MultiResponse]

	// Query returns the first page of endpoints matching values. Each value
	// is matched against the fields detected by EndpointQueryFields; values
	// are combined with op.
	Query(ctx context.Context, op QueryOp, values []string, opts ...RequestOption) Result[*EndpointPage]

	// Consume hands every matching endpoint to consumer.
	Consume(ctx context.Context, consumer func(*Endpoint), op QueryOp, values []string, opts ...RequestOption) Result[*ConsumeResponse]

	// All returns an iterator over every matching endpoint.
	All(ctx context.Context, op QueryOp, values []string, opts ...RequestOption) iter.Seq2[*Endpoint, error]
}

type endpointService struct {
	core *core
}

// sendTasks posts validated tasks to path and decodes the per-item outcome.
func sendTasks[T validator](ctx context.Context, c *core, op, path string, tasks []T, cfg *requestConfig) MultiResult[*MultiResponse] {
	return newMultiResult(c.logger, op, func() (*MultiResponse, error) {
		body, err := taskPayload(tasks)
		if err != nil {
			return nil, err
		}
		return send[MultiResponse](ctx, c, c.post(path, body, cfg))
	})
}

func (s *endpointService) Isolate(ctx context.Context, tasks []EndpointTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Endpoints.Isolate", routeIsolateEndpoint, tasks, newRequestConfig().apply(opts...))
}

func (s *endpointService) Restore(ctx context.Context, tasks []EndpointTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Endpoints.Restore", routeRestoreEndpoint, tasks, newRequestConfig().apply(opts...))
}

func (s *endpointService) CollectFile(ctx context.Context, tasks []FileTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Endpoints.CollectFile", routeCollectEndpointFile, tasks, newRequestConfig().apply(opts...))
}

func (s *endpointService) TerminateProcess(ctx context.Context, tasks []ProcessTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Endpoints.TerminateProcess", routeTerminateEndpointProcess, tasks, newRequestConfig().apply(opts...))
}

func (s *endpointService) queryRequest(op QueryOp, values []string, cfg *requestConfig) (*api.Request, error) {
	if len(values) == 0 {
		return nil, &ValidationError{Message: "at least one query value is required"}
	}
	return &api.Request{
		Method:  http.MethodGet,
		Path:    routeEndpointData,
		Headers: cfg.mergeHeaders(queryHeaders(endpointFilter(op, values...))),
	}, nil
}

func (s *endpointService) Query(ctx context.Context, op QueryOp, values []string, opts ...RequestOption) Result[*EndpointPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Endpoints.Query", func() (*EndpointPage, error) {
		req, err := s.queryRequest(op, values, cfg)
		if err != nil {
			return nil, err
		}
		return s.fetchPage(ctx, req)
	})
}

func (s *endpointService) Consume(ctx context.Context, consumer func(*Endpoint), op QueryOp, values []string, opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Endpoints.Consume", func() (*ConsumeResponse, error) {
		req, err := s.queryRequest(op, values, cfg)
		if err != nil {
			return nil, err
		}
		return consume[Endpoint](ctx, s.core.logger, req, s.fetchPage, consumer)
	})
}

func (s *endpointService) All(ctx context.Context, op QueryOp, values []string, opts ...RequestOption) iter.Seq2[*Endpoint, error] {
	cfg := newRequestConfig().apply(opts...)
	req, err := s.queryRequest(op, values, cfg)
	if err != nil {
		return func(yield func(*Endpoint, error) bool) { yield(nil, err) }
	}
	return walk[Endpoint](ctx, s.core.logger, req, s.fetchPage)
}

func (s *endpointService) fetchPage(ctx context.Context, req *api.Request) (*EndpointPage, error) {
	return send[EndpointPage](ctx, s.core, req)
}
