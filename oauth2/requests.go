package oauth2

// TokenRequest is the body POSTed to /v1/token to trade an authorization code.
type TokenRequest struct {
	Code         string `json:"code"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// AuthorizationRequest is the body POSTed to /v1/authorization to trade an identity assertion.
type AuthorizationRequest struct {
	ClientID     string       `json:"client_id"`
	Assertion    string       `json:"assertion"`
	State        string       `json:"state"`
	Scope        string       `json:"scope,omitempty"`
	ResponseType ResponseType `json:"response_type,omitempty"`
}

// VerifyRequest is the body POSTed to /v1/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

// DestroyRequest is the body POSTed to /v1/destroy.
type DestroyRequest struct {
	Token string `json:"token"`
}
