package oauth2

import "github.com/jrsteele09/go-fxa-oauth/scope"

// TokenResponse is the body returned from /v1/token, and from /v1/authorization
// when response_type is "token".
type TokenResponse struct {
	// AccessToken is the bearer token for protected resources.
	// Required: Yes
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer".
	TokenType string `json:"token_type,omitempty"`

	// Scope is the granted scope, a space separated string.
	Scope string `json:"scope,omitempty"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expires_in,omitempty"`

	// AuthAt is the unix time at which the user authenticated.
	AuthAt int64 `json:"auth_at,omitempty"`
}

// AuthorizationResponse is the body returned from /v1/authorization for the code flow.
type AuthorizationResponse struct {
	// Redirect is the URL the user agent would have been sent to.
	// Example: "https://rp.example.com/callback?code=abc123&state=x"
	Redirect string `json:"redirect"`
}

// VerifyResponse is the body returned from /v1/verify.
type VerifyResponse struct {
	// User is the FxA account uid the token was issued to.
	User string `json:"user"`

	// Scope is the granted scope. Older servers send a string, newer ones an array.
	Scope scope.Set `json:"scope"`

	// ClientID is the client the token was issued to.
	ClientID string `json:"client_id"`

	Email            string `json:"email,omitempty"`
	Generation       int64  `json:"generation,omitempty"`
	ProfileChangedAt int64  `json:"profile_changed_at,omitempty"`
}
