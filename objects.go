package tmv1

import (
	"context"
	"encoding/json"

	"github.com/tphakala/go-tmv1/internal/api"
)

// ObjectService manages the block list, the exception list and the
// suspicious object list.
type ObjectService interface {
	AddToBlockList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]
	RemoveFromBlockList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]

	AddToExceptionList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]
	RemoveFromExceptionList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]

	AddToSuspiciousList(ctx context.Context, tasks []SuspiciousObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]
	RemoveFromSuspiciousList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse]

	// Exceptions returns the first page of the exception list.
	Exceptions(ctx context.Context, opts ...RequestOption) Result[*ExceptionPage]
	// ConsumeExceptions hands every exception list entry to consumer.
	ConsumeExceptions(ctx context.Context, consumer func(*ExceptionObject), opts ...RequestOption) Result[*ConsumeResponse]

	// Suspicious returns the first page of the suspicious object list.
	Suspicious(ctx context.Context, opts ...RequestOption) Result[*SuspiciousPage]
	// ConsumeSuspicious hands every suspicious object to consumer.
	ConsumeSuspicious(ctx context.Context, consumer func(*SuspiciousObject), opts ...RequestOption) Result[*ConsumeResponse]
}

type objectService struct {
	core *core
}

func (s *objectService) sendObjects(ctx context.Context, op, path string, build func() ([]json.RawMessage, error), opts []RequestOption) MultiResult[*MultiResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newMultiResult(s.core.logger, op, func() (*MultiResponse, error) {
		body, err := build()
		if err != nil {
			return nil, err
		}
		return send[MultiResponse](ctx, s.core, s.core.post(path, body, cfg))
	})
}

func objects(tasks []ObjectTask) func() ([]json.RawMessage, error) {
	return func() ([]json.RawMessage, error) { return objectPayload(tasks) }
}

func (s *objectService) AddToBlockList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.AddToBlockList", routeAddToBlockList, objects(tasks), opts)
}

func (s *objectService) RemoveFromBlockList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.RemoveFromBlockList", routeRemoveFromBlockList, objects(tasks), opts)
}

func (s *objectService) AddToExceptionList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.AddToExceptionList", routeAddToExceptionList, objects(tasks), opts)
}

func (s *objectService) RemoveFromExceptionList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.RemoveFromExceptionList", routeRemoveFromExceptionList, objects(tasks), opts)
}

func (s *objectService) AddToSuspiciousList(ctx context.Context, tasks []SuspiciousObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.AddToSuspiciousList", routeAddToSuspiciousList, func() ([]json.RawMessage, error) {
		return suspiciousPayload(tasks)
	}, opts)
}

func (s *objectService) RemoveFromSuspiciousList(ctx context.Context, tasks []ObjectTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return s.sendObjects(ctx, "Objects.RemoveFromSuspiciousList", routeRemoveFromSuspiciousList, objects(tasks), opts)
}

func (s *objectService) Exceptions(ctx context.Context, opts ...RequestOption) Result[*ExceptionPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Objects.Exceptions", func() (*ExceptionPage, error) {
		return s.fetchExceptions(ctx, s.core.get(routeExceptionList, cfg))
	})
}

func (s *objectService) ConsumeExceptions(ctx context.Context, consumer func(*ExceptionObject), opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Objects.ConsumeExceptions", func() (*ConsumeResponse, error) {
		return consume[ExceptionObject](ctx, s.core.logger, s.core.get(routeExceptionList, cfg), s.fetchExceptions, consumer)
	})
}

func (s *objectService) Suspicious(ctx context.Context, opts ...RequestOption) Result[*SuspiciousPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Objects.Suspicious", func() (*SuspiciousPage, error) {
		return s.fetchSuspicious(ctx, s.core.get(routeSuspiciousList, cfg))
	})
}

func (s *objectService) ConsumeSuspicious(ctx context.Context, consumer func(*SuspiciousObject), opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Objects.ConsumeSuspicious", func() (*ConsumeResponse, error) {
		return consume[SuspiciousObject](ctx, s.core.logger, s.core.get(routeSuspiciousList, cfg), s.fetchSuspicious, consumer)
	})
}

func (s *objectService) fetchExceptions(ctx context.Context, req *api.Request) (*ExceptionPage, error) {
	return send[ExceptionPage](ctx, s.core, req)
}

func (s *objectService) fetchSuspicious(ctx context.Context, req *api.Request) (*SuspiciousPage, error) {
	return send[SuspiciousPage](ctx, s.core, req)
}
