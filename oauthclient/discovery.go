package oauthclient

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-fxa-oauth/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// ProviderMetadata is the subset of the OpenID discovery document the client exposes.
type ProviderMetadata struct {
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	UserInfoEndpoint      string   `json:"userinfo_endpoint"`
	JWKSURI               string   `json:"jwks_uri"`
	IntrospectionEndpoint string   `json:"introspection_endpoint"`
	RevocationEndpoint    string   `json:"revocation_endpoint"`
	ScopesSupported       []string `json:"scopes_supported"`

	endpoint xoauth2.Endpoint
}

// Endpoint returns the discovered endpoints in x/oauth2 form.
func (m *ProviderMetadata) Endpoint() xoauth2.Endpoint {
	return m.endpoint
}

// Discover fetches the OpenID discovery document for issuer. An empty issuer
// means the configured server URL. The document's issuer must match.
func (c *Client) Discover(ctx context.Context, issuer string) (*ProviderMetadata, error) {
	if issuer == "" {
		issuer = c.cfg.ServerURL
	}
	if c.httpClient != nil {
		ctx = oidc.ClientContext(ctx, c.httpClient)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", issuer, err)
	}

	var meta ProviderMetadata
	if err := provider.Claims(&meta); err != nil {
		return nil, fmt.Errorf("discover %s: decode metadata: %w", issuer, err)
	}
	meta.endpoint = provider.Endpoint()

	c.logger.Debug().
		Str("issuer", meta.Issuer).
		Str("authorization_endpoint", meta.AuthorizationEndpoint).
		Str("token_endpoint", meta.TokenEndpoint).
		Msg("Discovered OAuth provider")
	return &meta, nil
}

// OAuth2Config returns an x/oauth2 configuration aimed at this server, for
// callers that prefer the generic authorization code flow.
func (c *Client) OAuth2Config(redirectURI string, scopes ...string) *xoauth2.Config {
	return &xoauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint: xoauth2.Endpoint{
			AuthURL:   c.cfg.ServerURL + oauth2.AuthorizationPath,
			TokenURL:  c.cfg.ServerURL + oauth2.TokenPath,
			AuthStyle: xoauth2.AuthStyleInParams,
		},
	}
}
