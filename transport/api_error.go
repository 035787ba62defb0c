package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response. FxA servers describe
// failures with a JSON body of the form {code, errno, error, message};
// the fields are filled in when such a body is present.
type APIError struct {
	StatusCode int    `json:"code"`
	Errno      int    `json:"errno"`
	ErrorName  string `json:"error"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("oauth server error %d (errno %d): %s", e.StatusCode, e.Errno, e.Message)
	}
	return fmt.Sprintf("oauth server error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsClientError reports whether the server rejected the request (4xx).
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports whether the server failed (5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	_ = json.Unmarshal(body, apiErr)
	// the status line is authoritative over the body's "code"
	apiErr.StatusCode = status
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	apiErr.Body = string(body)
	return apiErr
}
