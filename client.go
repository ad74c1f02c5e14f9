package tmv1

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tphakala/go-tmv1/internal/api"
	"github.com/tphakala/go-tmv1/internal/auth"
)

// Version of this client, reported in the User-Agent header.
const Version = "0.8.0"

const userAgentSuffix = "GoTMV1"

// Client is the Vision One API client. It is safe for concurrent use.
type Client struct {
	// Alerts provides workbench alert operations.
	Alerts AlertService
	// Endpoints provides endpoint response and query operations.
	Endpoints EndpointService
	// Accounts provides domain account response operations.
	Accounts AccountService
	// Emails provides email message response operations.
	Emails EmailService
	// Objects provides block, exception and suspicious list operations.
	Objects ObjectService
	// Sandbox provides sandbox submission and analysis operations.
	Sandbox SandboxService
	// Tasks provides response task status lookups.
	Tasks TaskService
	// Search provides endpoint and email activity search.
	Search SearchService

	core *core
}

// NewClient creates a new Vision One client with the given options. An
// application name, a token and a base URL are required.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		poolConnections: 1,
		poolMaxSize:     1,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.appName == "" {
		return nil, ErrNoAppName
	}
	if cfg.token == "" {
		return nil, ErrNoToken
	}
	if cfg.baseURL == "" {
		return nil, ErrNoBaseURL
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	transport, err := api.NewTransport(cfg.baseURL, &auth.Credentials{Token: cfg.token}, api.Config{
		PoolConnections: cfg.poolConnections,
		PoolMaxSize:     cfg.poolMaxSize,
		ConnectTimeout:  cfg.connectTimeout,
		ReadTimeout:     cfg.readTimeout,
		HTTPClient:      cfg.httpClient,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	transport.UserAgent = fmt.Sprintf("%s-%s/%s", cfg.appName, userAgentSuffix, Version)

	c := &core{transport: transport, logger: logger}
	client := &Client{core: c}

	// Initialize services
	client.Alerts = &alertService{c}
	client.Endpoints = &endpointService{c}
	client.Accounts = &accountService{c}
	client.Emails = &emailService{c}
	client.Objects = &objectService{c}
	client.Sandbox = &sandboxService{c}
	client.Tasks = &taskService{c}
	client.Search = &searchService{c}

	logger.Debug("client created", "base_url", transport.BaseURL.String(), "user_agent", transport.UserAgent)

	return client, nil
}

// BaseURL returns the API base URL including the version segment.
func (c *Client) BaseURL() string {
	return c.core.transport.BaseURL.String()
}

// CheckConnectivity verifies that the API is reachable with the configured
// token.
func (c *Client) CheckConnectivity(ctx context.Context, opts ...RequestOption) Result[*ConnectivityResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(c.core.logger, "CheckConnectivity", func() (*ConnectivityResponse, error) {
		return send[ConnectivityResponse](ctx, c.core, c.core.get(routeConnectivity, cfg))
	})
}

// core is shared by all services: it sends requests, classifies responses
// and decodes them.
type core struct {
	transport *api.Transport
	logger    *slog.Logger
}

// process sends req and decodes the response into target.
func (c *core) process(ctx context.Context, req *api.Request, target any) error {
	c.logger.Debug("processing request", "method", req.Method, "path", req.Path, "model", modelName(target))

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrEncodeBody) {
			return &ValidationError{Message: "invalid request payload", Err: err}
		}
		return &TransportError{Err: err}
	}

	if err := validateResponse(resp); err != nil {
		return err
	}
	return parseResponse(resp, target)
}

// send processes req into a new T.
func send[T any](ctx context.Context, c *core, req *api.Request) (*T, error) {
	out := new(T)
	if err := c.process(ctx, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *core) get(path string, cfg *requestConfig) *api.Request {
	return &api.Request{Method: http.MethodGet, Path: path, Headers: cfg.mergeHeaders(nil)}
}

func (c *core) post(path string, body any, cfg *requestConfig) *api.Request {
	return &api.Request{Method: http.MethodPost, Path: path, Body: body, Headers: cfg.mergeHeaders(nil)}
}
