package oauthclient

import (
	"net/http"

	"github.com/jrsteele09/go-fxa-oauth/internal/utils"
	"github.com/jrsteele09/go-fxa-oauth/transport"
	"github.com/rs/zerolog"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithTransport replaces the HTTP transport, e.g. with a pre-configured or fake Poster.
func WithTransport(p transport.Poster) Option {
	return func(c *Client) {
		c.transport = p
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// CallOption overrides a configured value, or supplies an optional parameter,
// for a single call.
type CallOption func(*callParams)

type callParams struct {
	clientID     *string
	clientSecret *string
	scope        *string
	redirectURI  *string
	action       *string
	email        *string
}

// WithClientID overrides the configured client id.
func WithClientID(id string) CallOption {
	return func(p *callParams) { p.clientID = utils.Ptr(id) }
}

// WithClientSecret overrides the configured client secret.
func WithClientSecret(secret string) CallOption {
	return func(p *callParams) { p.clientSecret = utils.Ptr(secret) }
}

// WithScope requests a scope. Multiple tokens are space separated.
func WithScope(scope string) CallOption {
	return func(p *callParams) { p.scope = utils.Ptr(scope) }
}

// WithRedirectURI sets redirect_uri on the authorization URL.
func WithRedirectURI(uri string) CallOption {
	return func(p *callParams) { p.redirectURI = utils.Ptr(uri) }
}

// WithAction sets action on the authorization URL, e.g. "signin" or "signup".
func WithAction(action string) CallOption {
	return func(p *callParams) { p.action = utils.Ptr(action) }
}

// WithEmail pre-fills the email on the authorization page.
func WithEmail(email string) CallOption {
	return func(p *callParams) { p.email = utils.Ptr(email) }
}

func newCallParams(opts []CallOption) callParams {
	var p callParams
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
