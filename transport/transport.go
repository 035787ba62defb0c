// Package transport is the HTTP adapter used by the OAuth client. It POSTs JSON
// bodies to a base server URL and hands back the decoded JSON object, turning
// non-2xx responses into *APIError values.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-fxa-oauth/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// DefaultTimeout is used when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error body is kept on APIError.
	maxErrorBody = 4096
)

// Poster is the contract the OAuth client needs from a transport.
type Poster interface {
	Post(ctx context.Context, path string, body any) (Response, error)
}

// HTTP is a Poster backed by net/http.
type HTTP struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Poster = (*HTTP)(nil)

// Option configures the HTTP transport.
type Option func(*HTTP)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		h.httpClient = c
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(h *HTTP) {
		h.logger = l
	}
}

// NewHTTP creates a transport rooted at baseURL.
func NewHTTP(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the server URL requests are made against.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// Post sends body as JSON to baseURL+path and decodes the JSON object response.
func (h *HTTP) Post(ctx context.Context, path string, body any) (Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEncodeRequest, "POST %s: %v", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", "application/json")

	h.logger.Debug().Str("path", path).Msg("POST")
	start := time.Now()

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s: read body", path)
	}

	h.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("POST complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Response{}, nil
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return nil, fmt.Errorf("POST %s: %w", path, errors.ErrInvalidResponse)
	}
	return out, nil
}
