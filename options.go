package tmv1

import (
	"log/slog"
	"maps"
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	appName         string
	token           string
	baseURL         string
	poolConnections int
	poolMaxSize     int
	connectTimeout  time.Duration
	readTimeout     time.Duration
	httpClient      *http.Client
	logger          *slog.Logger
}

// WithAppName sets the calling application name, reported in the User-Agent.
func WithAppName(name string) ClientOption {
	return func(c *clientConfig) {
		c.appName = name
	}
}

// WithToken sets the Vision One API token.
func WithToken(token string) ClientOption {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithBaseURL sets the regional Vision One API URL, for example
// https://api.xdr.trendmicro.com.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithPoolConnections sets the number of connection pools.
func WithPoolConnections(n int) ClientOption {
	return func(c *clientConfig) {
		c.poolConnections = n
	}
}

// WithPoolMaxSize sets the maximum number of idle connections kept per pool.
func WithPoolMaxSize(n int) ClientOption {
	return func(c *clientConfig) {
		c.poolMaxSize = n
	}
}

// WithConnectTimeout sets the TCP connect timeout.
// Note: ignored when WithHTTPClient is used.
func WithConnectTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.connectTimeout = d
	}
}

// WithReadTimeout sets how long to wait for response headers.
// Note: ignored when WithHTTPClient is used.
func WithReadTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.readTimeout = d
	}
}

// WithHTTPClient sets a custom HTTP client. Pool and timeout options are
// ignored; configure the provided client instead.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// RequestOption configures individual API requests.
type RequestOption func(*requestConfig)

type requestConfig struct {
	headers     http.Header
	poll        bool
	pollTimeout time.Duration
}

func newRequestConfig() *requestConfig {
	return &requestConfig{
		headers:     make(http.Header),
		poll:        true,
		pollTimeout: defaultPollTimeout,
	}
}

func (r *requestConfig) apply(opts ...RequestOption) *requestConfig {
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// mergeHeaders returns base overlaid with the request headers. Request
// headers win.
func (r *requestConfig) mergeHeaders(base http.Header) http.Header {
	out := make(http.Header, len(base)+len(r.headers))
	maps.Copy(out, base)
	maps.Copy(out, r.headers)
	return out
}

// WithHeader adds a custom header to a request.
func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) {
		r.headers.Set(key, value)
	}
}

// WithHeaders adds multiple custom headers to a request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *requestConfig) {
		for k, v := range headers {
			r.headers.Set(k, v)
		}
	}
}

// WithPoll controls whether task operations wait for the task to finish.
// Polling is on by default.
func WithPoll(poll bool) RequestOption {
	return func(r *requestConfig) {
		r.poll = poll
	}
}

// WithPollTimeout bounds how long task operations poll. The default is 30
// minutes.
func WithPollTimeout(d time.Duration) RequestOption {
	return func(r *requestConfig) {
		r.pollTimeout = d
	}
}
