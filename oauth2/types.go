// Package oauth2 holds the wire types exchanged with the Firefox Accounts OAuth server.
package oauth2

// ResponseType represents the OAuth 2.0 response type sent to the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType asks the authorization endpoint for a redirect carrying an authorization code.
	// This is the server default and is never sent explicitly.
	CodeResponseType ResponseType = "code"

	// TokenResponseType asks the authorization endpoint to return an access token directly.
	// Example: {"client_id": "...", "assertion": "...", "response_type": "token"}
	TokenResponseType ResponseType = "token"
)

// Endpoint paths relative to the configured server URL.
const (
	AuthorizationPath = "/v1/authorization"
	TokenPath         = "/v1/token"
	VerifyPath        = "/v1/verify"
	DestroyPath       = "/v1/destroy"
)

// Response field names that callers depend on.
const (
	FieldAccessToken = "access_token"
	FieldRedirect    = "redirect"
	FieldUser        = "user"
	FieldScope       = "scope"
	FieldClientID    = "client_id"
	FieldCode        = "code"
)

// Redirect URL query parameter names, in the order they are emitted.
const (
	ParamClientID    = "client_id"
	ParamState       = "state"
	ParamRedirectURI = "redirect_uri"
	ParamScope       = "scope"
	ParamAction      = "action"
	ParamEmail       = "email"
)
