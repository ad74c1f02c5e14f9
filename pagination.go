package tmv1

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tphakala/go-tmv1/internal/api"
)

// Page is one page of a linkable list. NextLink is empty on the last page.
type Page[T any] struct {
	NextLink string `json:"nextLink,omitempty"`
	Items    []T    `json:"items"`
}

func (p *Page[T]) pageItems() []T       { return p.Items }
func (p *Page[T]) nextPageLink() string { return p.NextLink }

type linkable[T any] interface {
	pageItems() []T
	nextPageLink() string
}

// walk yields every item of every page, following next links until a page
// has none. The first page is fetched with first; later pages carry only
// the skip token, the filters of the first request are not resent. A fetch
// error is yielded once and ends the sequence.
func walk[T any, P linkable[T]](ctx context.Context, logger *slog.Logger, first *api.Request,
	fetch func(context.Context, *api.Request) (P, error)) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		req := first
		for {
			page, err := fetch(ctx, req)
			if err != nil {
				yield(nil, err)
				return
			}

			items := page.pageItems()
			for i := range items {
				if !yield(&items[i], nil) {
					return
				}
			}

			link := page.nextPageLink()
			if link == "" {
				return
			}
			logger.Debug("following next link", "link", link)

			req, err = nextPageRequest(link)
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// consume hands every item to consumer and counts them.
func consume[T any, P linkable[T]](ctx context.Context, logger *slog.Logger, first *api.Request,
	fetch func(context.Context, *api.Request) (P, error), consumer func(*T)) (*ConsumeResponse, error) {
	total := 0
	for item, err := range walk[T](ctx, logger, first, fetch) {
		if err != nil {
			return nil, err
		}
		consumer(item)
		total++
	}
	logger.Info("items consumed", "model", modelName(new(T)), "total", total)
	return &ConsumeResponse{TotalConsumed: total}, nil
}

// nextPageRequest builds the request for a next link. The path is taken
// relative to the API version segment and the skip token is read as a query
// value, so base64 padding in the token survives.
func nextPageRequest(link string) (*api.Request, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, &ValidationError{Message: "invalid next link", Err: err}
	}

	path := u.Path
	if i := strings.Index(path, "/"+api.Version); i >= 0 {
		path = path[i+len(api.Version)+1:]
	}

	req := &api.Request{Method: http.MethodGet, Path: path}
	if token := skipToken(u); token != "" {
		req.Query = url.Values{"skipToken": {token}}
	}
	return req, nil
}

func skipToken(u *url.URL) string {
	if token := u.Query().Get("skipToken"); token != "" {
		return token
	}
	// Unencoded tokens may not survive query parsing; take everything after
	// the last '='.
	if i := strings.LastIndex(u.RawQuery, "="); i >= 0 {
		return u.RawQuery[i+1:]
	}
	return ""
}
