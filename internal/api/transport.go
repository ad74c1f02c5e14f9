// Package api provides low-level HTTP transport for Vision One API calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/tphakala/go-tmv1/internal/auth"
)

// Version is the API version segment appended to the base URL.
const Version = "v3.0"

const (
	defaultConnectTimeout = 30 * time.Second
	defaultReadTimeout    = 30 * time.Second
	defaultMaxBodySize    = 512 * 1024 * 1024 // 512MB, investigation packages can be large

	// BinaryPlaceholder replaces binary bodies in logs.
	BinaryPlaceholder = "***binary content***"
)

// ErrEncodeBody is returned when a request payload cannot be serialized.
var ErrEncodeBody = errors.New("encoding request body")

// Config holds connection settings for a Transport.
type Config struct {
	PoolConnections int
	PoolMaxSize     int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration

	// HTTPClient replaces the pooled client built from the settings above.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Transport handles HTTP communication with the Vision One API.
type Transport struct {
	BaseURL     *url.URL
	HTTPClient  *retryablehttp.Client
	Credentials *auth.Credentials
	UserAgent   string
	Logger      *slog.Logger
}

// NewTransport creates a Transport for baseURL. The API version segment is
// appended to the base URL; a trailing slash is tolerated.
func NewTransport(baseURL string, creds *auth.Credentials, cfg Config) (*Transport, error) {
	if !creds.Valid() {
		return nil, fmt.Errorf("credentials must be provided")
	}

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/" + Version)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL: unsupported scheme %q", u.Scheme)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newPooledClient(cfg)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.Logger = logger
	rc.RetryMax = 0
	rc.CheckRetry = noRetry

	return &Transport{
		BaseURL:     u,
		HTTPClient:  rc,
		Credentials: creds,
		Logger:      logger,
	}, nil
}

// newPooledClient builds an http.Client whose idle pool mirrors the
// connection/max size pair of the configuration.
func newPooledClient(cfg Config) *http.Client {
	connections := max(cfg.PoolConnections, 1)
	maxSize := max(cfg.PoolMaxSize, 1)

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	tr := cleanhttp.DefaultPooledTransport()
	tr.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.MaxIdleConns = connections * maxSize
	tr.MaxIdleConnsPerHost = maxSize
	tr.ResponseHeaderTimeout = readTimeout

	return &http.Client{Transport: tr}
}

// noRetry disables retries: every request is attempted exactly once.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, ctx.Err()
}

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field       string
	Name        string
	Content     []byte
	ContentType string
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header

	// Body is serialized as JSON. It is ignored when Form or File is set.
	Body any
	Form map[string]string
	File *FormFile
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// ContentType returns the response Content-Type header.
func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// Do executes an API request and returns the raw response.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, logBody, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	t.Logger.Debug("sending request",
		"method", httpReq.Method,
		"url", httpReq.URL.String(),
		"headers", auth.Redact(fmt.Sprint(httpReq.Header)),
		"body", logBody,
	)

	httpResp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Limit response body size to prevent memory exhaustion
	limitedReader := io.LimitReader(httpResp.Body, defaultMaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(body)) > defaultMaxBodySize {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", defaultMaxBodySize)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}

	t.Logger.Debug("received response",
		"status", resp.StatusCode,
		"headers", fmt.Sprint(resp.Headers),
		"body", loggableBody(resp.ContentType(), body),
	)

	return resp, nil
}

func (t *Transport) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, string, error) {
	u := t.BaseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        []byte
		contentType string
		logBody     string
	)
	switch {
	case req.File != nil || req.Form != nil:
		data, ct, err := encodeMultipart(req.Form, req.File)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
		body, contentType, logBody = data, ct, BinaryPlaceholder
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
		body, contentType, logBody = data, "application/json", string(data)
	}

	var rawBody any
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, u.String(), rawBody)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	// Set default headers
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("User-Agent", t.UserAgent)

	// Apply authentication
	t.Credentials.Apply(httpReq.Request)

	// Apply custom headers, caller values win
	maps.Copy(httpReq.Header, req.Headers)

	return httpReq, logBody, nil
}

func encodeMultipart(fields map[string]string, file *FormFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range slices.Sorted(maps.Keys(fields)) {
		if err := w.WriteField(name, fields[name]); err != nil {
			return nil, "", err
		}
	}

	if file != nil {
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// loggableBody hides non-JSON application payloads such as PDF or zip archives.
func loggableBody(contentType string, body []byte) string {
	if IsBinary(contentType) {
		return BinaryPlaceholder
	}
	return string(body)
}

// IsBinary reports whether contentType denotes a non-JSON application payload.
func IsBinary(contentType string) bool {
	return strings.Contains(contentType, "application") && !strings.Contains(contentType, "json")
}
