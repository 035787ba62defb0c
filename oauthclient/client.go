// Package oauthclient is a client for the Firefox Accounts OAuth server.
package oauthclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-fxa-oauth/internal/utils"
	"github.com/jrsteele09/go-fxa-oauth/oauth2"
	"github.com/jrsteele09/go-fxa-oauth/scope"
	"github.com/jrsteele09/go-fxa-oauth/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultServerURL is the production Firefox Accounts OAuth server.
const DefaultServerURL = "https://oauth.accounts.firefox.com"

// assertionFlowState is sent as the state of assertion exchanges. Those calls
// collapse the redirect dance into one request and never see the state echoed
// back to a user agent, so no CSRF check applies. They are meant for tests and
// tooling, not for production redirect handling.
const assertionFlowState = "x"

// Config is the immutable client configuration.
type Config struct {
	// ClientID is issued by the provider at client registration.
	ClientID string

	// ClientSecret is only needed for confidential clients trading codes.
	ClientSecret string

	// ServerURL is the OAuth server base URL. Empty means DefaultServerURL.
	ServerURL string
}

// Client talks to the Firefox Accounts OAuth server.
type Client struct {
	cfg        Config
	transport  transport.Poster
	httpClient *http.Client
	logger     zerolog.Logger
}

// TokenInfo is the validated result of VerifyToken.
type TokenInfo struct {
	User     string
	Scope    scope.Set
	ClientID string

	Email            string
	Generation       int64
	ProfileChangedAt int64

	// Raw holds every field the server returned, including unknown ones.
	Raw transport.Response
}

// New creates a Client. The configuration is copied and never modified.
func New(cfg Config, opts ...Option) *Client {
	cfg.ServerURL = strings.TrimSuffix(cfg.ServerURL, "/")
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	c := &Client{
		cfg:    cfg,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		topts := []transport.Option{transport.WithLogger(c.logger)}
		if c.httpClient != nil {
			topts = append(topts, transport.WithHTTPClient(c.httpClient))
		}
		c.transport = transport.NewHTTP(cfg.ServerURL, topts...)
	}
	return c
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// ServerURL returns the resolved OAuth server base URL.
func (c *Client) ServerURL() string {
	return c.cfg.ServerURL
}

// BuildRedirectURL returns the authorization endpoint URL a user agent should be
// sent to. Query parameters are emitted in the order client_id, state,
// redirect_uri, scope, action, email; optional ones only when supplied.
// Values are passed through unvalidated.
func (c *Client) BuildRedirectURL(state string, opts ...CallOption) string {
	p := newCallParams(opts)

	params := []queryParam{
		{oauth2.ParamClientID, utils.Coalesce(p.clientID, c.cfg.ClientID)},
		{oauth2.ParamState, state},
	}
	for _, opt := range []struct {
		key   string
		value *string
	}{
		{oauth2.ParamRedirectURI, p.redirectURI},
		{oauth2.ParamScope, p.scope},
		{oauth2.ParamAction, p.action},
		{oauth2.ParamEmail, p.email},
	} {
		if opt.value != nil {
			params = append(params, queryParam{opt.key, *opt.value})
		}
	}

	return c.cfg.ServerURL + oauth2.AuthorizationPath + "?" + encodeOrdered(params)
}

// ExchangeCode trades an authorization code from the redirect dance for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string, opts ...CallOption) (string, error) {
	p := newCallParams(opts)
	clientID, err := c.clientID(p)
	if err != nil {
		return "", err
	}

	resp, err := c.transport.Post(ctx, oauth2.TokenPath, oauth2.TokenRequest{
		Code:         code,
		ClientID:     clientID,
		ClientSecret: utils.Coalesce(p.clientSecret, c.cfg.ClientSecret),
	})
	if err != nil {
		return "", err
	}
	return c.accessToken(resp)
}

// AuthorizeCodeFromAssertion trades an identity assertion for an authorization
// code in a single request, standing in for the browser redirect. Intended for
// tests and tooling.
func (c *Client) AuthorizeCodeFromAssertion(ctx context.Context, assertion string, opts ...CallOption) (string, error) {
	p := newCallParams(opts)
	req, err := c.assertionRequest(assertion, p)
	if err != nil {
		return "", err
	}

	resp, err := c.transport.Post(ctx, oauth2.AuthorizationPath, req)
	if err != nil {
		return "", err
	}
	if err := c.require(resp, oauth2.FieldRedirect); err != nil {
		return "", err
	}

	var redirect string
	if err := resp.Field(oauth2.FieldRedirect, &redirect); err != nil {
		return "", c.violation(&OutOfProtocolError{Message: "redirect in OAuth response is not a string"})
	}
	return c.codeFromRedirect(redirect)
}

// AuthorizeTokenFromAssertion trades an identity assertion directly for an access token.
func (c *Client) AuthorizeTokenFromAssertion(ctx context.Context, assertion string, opts ...CallOption) (string, error) {
	p := newCallParams(opts)
	req, err := c.assertionRequest(assertion, p)
	if err != nil {
		return "", err
	}
	req.ResponseType = oauth2.TokenResponseType

	resp, err := c.transport.Post(ctx, oauth2.AuthorizationPath, req)
	if err != nil {
		return "", err
	}
	return c.accessToken(resp)
}

// VerifyToken checks a token against the verification endpoint. When WithScope
// is given, the granted scope must satisfy it.
func (c *Client) VerifyToken(ctx context.Context, token string, opts ...CallOption) (*TokenInfo, error) {
	p := newCallParams(opts)

	resp, err := c.transport.Post(ctx, oauth2.VerifyPath, oauth2.VerifyRequest{Token: token})
	if err != nil {
		return nil, err
	}
	if err := c.require(resp, oauth2.FieldUser, oauth2.FieldScope, oauth2.FieldClientID); err != nil {
		return nil, err
	}

	var body oauth2.VerifyResponse
	if err := resp.Decode(&body); err != nil {
		return nil, c.violation(&OutOfProtocolError{Message: "malformed OAuth verify response: " + err.Error()})
	}

	if p.scope != nil {
		requested := scope.Parse(*p.scope)
		if !scope.Matches(body.Scope, requested) {
			return nil, &ScopeMismatchError{Granted: body.Scope, Requested: requested}
		}
	}

	return &TokenInfo{
		User:             body.User,
		Scope:            body.Scope,
		ClientID:         body.ClientID,
		Email:            body.Email,
		Generation:       body.Generation,
		ProfileChangedAt: body.ProfileChangedAt,
		Raw:              resp,
	}, nil
}

// DestroyToken revokes an access token.
func (c *Client) DestroyToken(ctx context.Context, token string) error {
	_, err := c.transport.Post(ctx, oauth2.DestroyPath, oauth2.DestroyRequest{Token: token})
	return err
}

func (c *Client) clientID(p callParams) (string, error) {
	id := utils.Coalesce(p.clientID, c.cfg.ClientID)
	if id == "" {
		return "", ErrMissingClientID
	}
	return id, nil
}

func (c *Client) assertionRequest(assertion string, p callParams) (oauth2.AuthorizationRequest, error) {
	clientID, err := c.clientID(p)
	if err != nil {
		return oauth2.AuthorizationRequest{}, err
	}
	return oauth2.AuthorizationRequest{
		ClientID:  clientID,
		Assertion: assertion,
		State:     assertionFlowState,
		Scope:     utils.Value(p.scope),
	}, nil
}

// require is the single missing-field check shared by every endpoint.
func (c *Client) require(resp transport.Response, fields ...string) error {
	if missing := resp.Missing(fields...); len(missing) > 0 {
		return c.violation(missingFieldsError(missing...))
	}
	return nil
}

func (c *Client) accessToken(resp transport.Response) (string, error) {
	if err := c.require(resp, oauth2.FieldAccessToken); err != nil {
		return "", err
	}
	var token string
	if err := resp.Field(oauth2.FieldAccessToken, &token); err != nil {
		return "", c.violation(&OutOfProtocolError{Message: "access_token in OAuth response is not a string"})
	}
	return token, nil
}

func (c *Client) codeFromRedirect(redirect string) (string, error) {
	u, err := url.Parse(redirect)
	if err != nil {
		return "", c.violation(&OutOfProtocolError{Message: "code missing in OAuth redirect url"})
	}
	code := u.Query().Get(oauth2.FieldCode)
	if code == "" {
		return "", c.violation(&OutOfProtocolError{Message: "code missing in OAuth redirect url"})
	}
	return code, nil
}

func (c *Client) violation(err *OutOfProtocolError) error {
	c.logger.Warn().Str("server", c.cfg.ServerURL).Msg(err.Message)
	return err
}

type queryParam struct {
	key   string
	value string
}

// encodeOrdered is url.Values.Encode without the key sort.
func encodeOrdered(params []queryParam) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}
