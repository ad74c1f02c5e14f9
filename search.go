package tmv1

import (
	"context"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/go-tmv1/internal/api"
)

// ActivityQuery selects activity records. Fields are matched as
// field:"value" clauses combined with Op, which defaults to QueryAnd.
type ActivityQuery struct {
	Op     QueryOp
	Fields map[string]string

	StartTime time.Time
	EndTime   time.Time
	// Top limits the number of records per page.
	Top int
	// Select lists the record fields to return.
	Select []string
}

func (q *ActivityQuery) request(path string, mode SearchMode, cfg *requestConfig) (*api.Request, error) {
	if q == nil || len(q.Fields) == 0 {
		return nil, &ValidationError{Message: "activity query needs at least one field"}
	}
	op := q.Op
	if op == "" {
		op = QueryAnd
	}

	params := url.Values{}
	if !q.StartTime.IsZero() {
		params.Set("startDateTime", q.StartTime.UTC().Format(alertTimeLayout))
	}
	if !q.EndTime.IsZero() {
		params.Set("endDateTime", q.EndTime.UTC().Format(alertTimeLayout))
	}
	if q.Top > 0 {
		params.Set("top", strconv.Itoa(q.Top))
	}
	if len(q.Select) > 0 {
		params.Set("select", strings.Join(q.Select, ","))
	}
	params.Set("mode", string(mode))

	return &api.Request{
		Method:  http.MethodGet,
		Path:    path,
		Query:   params,
		Headers: cfg.mergeHeaders(queryHeaders(activityFilter(op, q.Fields))),
	}, nil
}

// SearchService searches endpoint and email activity data.
type SearchService interface {
	EndpointActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*EndpointActivityPage]
	EndpointActivityCount(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*ActivityCount]
	ConsumeEndpointActivities(ctx context.Context, consumer func(*EndpointActivity), query *ActivityQuery, opts ...RequestOption) Result[*ConsumeResponse]

	EmailActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*EmailActivityPage]
	EmailActivityCount(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*ActivityCount]
	ConsumeEmailActivities(ctx context.Context, consumer func(*EmailActivity), query *ActivityQuery, opts ...RequestOption) Result[*ConsumeResponse]

	// AllEndpointActivities returns an iterator over every matching record.
	AllEndpointActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) iter.Seq2[*EndpointActivity, error]
}

type searchService struct {
	core *core
}

func (s *searchService) EndpointActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*EndpointActivityPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Search.EndpointActivities", func() (*EndpointActivityPage, error) {
		req, err := query.request(routeEndpointActivities, SearchDefault, cfg)
		if err != nil {
			return nil, err
		}
		return s.fetchEndpointPage(ctx, req)
	})
}

func (s *searchService) EndpointActivityCount(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*ActivityCount] {
	return s.count(ctx, "Search.EndpointActivityCount", routeEndpointActivities, query, opts)
}

func (s *searchService) ConsumeEndpointActivities(ctx context.Context, consumer func(*EndpointActivity), query *ActivityQuery, opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Search.ConsumeEndpointActivities", func() (*ConsumeResponse, error) {
		req, err := query.request(routeEndpointActivities, SearchDefault, cfg)
		if err != nil {
			return nil, err
		}
		return consume[EndpointActivity](ctx, s.core.logger, req, s.fetchEndpointPage, consumer)
	})
}

func (s *searchService) AllEndpointActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) iter.Seq2[*EndpointActivity, error] {
	cfg := newRequestConfig().apply(opts...)
	req, err := query.request(routeEndpointActivities, SearchDefault, cfg)
	if err != nil {
		return func(yield func(*EndpointActivity, error) bool) { yield(nil, err) }
	}
	return walk[EndpointActivity](ctx, s.core.logger, req, s.fetchEndpointPage)
}

func (s *searchService) EmailActivities(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*EmailActivityPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Search.EmailActivities", func() (*EmailActivityPage, error) {
		req, err := query.request(routeEmailActivities, SearchDefault, cfg)
		if err != nil {
			return nil, err
		}
		return s.fetchEmailPage(ctx, req)
	})
}

func (s *searchService) EmailActivityCount(ctx context.Context, query *ActivityQuery, opts ...RequestOption) Result[*ActivityCount] {
	return s.count(ctx, "Search.EmailActivityCount", routeEmailActivities, query, opts)
}

func (s *searchService) ConsumeEmailActivities(ctx context.Context, consumer func(*EmailActivity), query *ActivityQuery, opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Search.ConsumeEmailActivities", func() (*ConsumeResponse, error) {
		req, err := query.request(routeEmailActivities, SearchDefault, cfg)
		if err != nil {
			return nil, err
		}
		return consume[EmailActivity](ctx, s.core.logger, req, s.fetchEmailPage, consumer)
	})
}

func (s *searchService) count(ctx context.Context, op, path string, query *ActivityQuery, opts []RequestOption) Result[*ActivityCount] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, op, func() (*ActivityCount, error) {
		req, err := query.request(path, SearchCountOnly, cfg)
		if err != nil {
			return nil, err
		}
		return send[ActivityCount](ctx, s.core, req)
	})
}

func (s *searchService) fetchEndpointPage(ctx context.Context, req *api.Request) (*EndpointActivityPage, error) {
	return send[EndpointActivityPage](ctx, s.core, req)
}

func (s *searchService) fetchEmailPage(ctx context.Context, req *api.Request) (*EmailActivityPage, error) {
	return send[EmailActivityPage](ctx, s.core, req)
}
