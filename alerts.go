package tmv1

import (
	"context"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tphakala/go-tmv1/internal/api"
)

// AlertFilter restricts the alert list to a creation time range. Zero times
// leave the server defaults in place: the last 24 hours.
type AlertFilter struct {
	StartTime time.Time
	EndTime   time.Time
}

const alertTimeLayout = "2006-01-02T15:04:05Z"

func (f *AlertFilter) params() url.Values {
	if f == nil {
		return nil
	}
	params := url.Values{}
	if !f.StartTime.IsZero() {
		params.Set("startDateTime", f.StartTime.UTC().Format(alertTimeLayout))
	}
	if !f.EndTime.IsZero() {
		params.Set("endDateTime", f.EndTime.UTC().Format(alertTimeLayout))
	}
	return params
}

// AlertService provides operations on workbench alerts.
type AlertService interface {
	// Get retrieves an alert together with its ETag.
	Get(ctx context.Context, alertID string, opts ...RequestOption) Result[*AlertDetails]

	// List returns the first page of alerts.
	List(ctx context.Context, filter *AlertFilter, opts ...RequestOption) Result[*AlertPage]

	// Consume hands every alert of every page to consumer.
	Consume(ctx context.Context, consumer func(*Alert), filter *AlertFilter, opts ...RequestOption) Result[*ConsumeResponse]

	// All returns an iterator over every alert. Pages are fetched lazily.
	All(ctx context.Context, filter *AlertFilter, opts ...RequestOption) iter.Seq2[*Alert, error]

	// AddNote attaches a note to an alert.
	AddNote(ctx context.Context, alertID, note string, opts ...RequestOption) Result[*AddAlertNoteResponse]

	// UpdateStatus changes the investigation status of an alert. The update
	// only applies if ifMatch matches the current ETag of the alert.
	UpdateStatus(ctx context.Context, alertID string, status InvestigationStatus, ifMatch string, opts ...RequestOption) Result[*NoContentResponse]
}

type alertService struct {
	core *core
}

func (s *alertService) Get(ctx context.Context, alertID string, opts ...RequestOption) Result[*AlertDetails] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Alerts.Get", func() (*AlertDetails, error) {
		if err := requireID("alert ID", alertID); err != nil {
			return nil, err
		}
		return send[AlertDetails](ctx, s.core, s.core.get(route(routeAlert, alertID), cfg))
	})
}

func (s *alertService) listRequest(filter *AlertFilter, cfg *requestConfig) *api.Request {
	req := s.core.get(routeAlertList, cfg)
	req.Query = filter.params()
	return req
}

func (s *alertService) List(ctx context.Context, filter *AlertFilter, opts ...RequestOption) Result[*AlertPage] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Alerts.List", func() (*AlertPage, error) {
		return send[AlertPage](ctx, s.core, s.listRequest(filter, cfg))
	})
}

func (s *alertService) Consume(ctx context.Context, consumer func(*Alert), filter *AlertFilter, opts ...RequestOption) Result[*ConsumeResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Alerts.Consume", func() (*ConsumeResponse, error) {
		return consume[Alert](ctx, s.core.logger, s.listRequest(filter, cfg), s.fetchPage, consumer)
	})
}

func (s *alertService) All(ctx context.Context, filter *AlertFilter, opts ...RequestOption) iter.Seq2[*Alert, error] {
	cfg := newRequestConfig().apply(opts...)
	return walk[Alert](ctx, s.core.logger, s.listRequest(filter, cfg), s.fetchPage)
}

func (s *alertService) fetchPage(ctx context.Context, req *api.Request) (*AlertPage, error) {
	return send[AlertPage](ctx, s.core, req)
}

func (s *alertService) AddNote(ctx context.Context, alertID, note string, opts ...RequestOption) Result[*AddAlertNoteResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Alerts.AddNote", func() (*AddAlertNoteResponse, error) {
		if err := requireID("alert ID", alertID); err != nil {
			return nil, err
		}
		body := map[string]string{"content": note}
		return send[AddAlertNoteResponse](ctx, s.core, s.core.post(route(routeAddAlertNote, alertID), body, cfg))
	})
}

func (s *alertService) UpdateStatus(ctx context.Context, alertID string, status InvestigationStatus, ifMatch string, opts ...RequestOption) Result[*NoContentResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Alerts.UpdateStatus", func() (*NoContentResponse, error) {
		if err := requireID("alert ID", alertID); err != nil {
			return nil, err
		}
		h := make(http.Header)
		h.Set("If-Match", quoteETag(ifMatch))
		req := &api.Request{
			Method:  http.MethodPatch,
			Path:    route(routeAlert, alertID),
			Body:    map[string]InvestigationStatus{"investigationStatus": status},
			Headers: cfg.mergeHeaders(h),
		}
		return send[NoContentResponse](ctx, s.core, req)
	})
}

// quoteETag wraps an entity tag in double quotes unless it already starts
// with one.
func quoteETag(tag string) string {
	if strings.HasPrefix(tag, `"`) {
		return tag
	}
	return `"` + tag + `"`
}
