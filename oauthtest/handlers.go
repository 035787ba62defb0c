package oauthtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-fxa-oauth/oauth2"
	"github.com/jrsteele09/go-fxa-oauth/scope"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Error numbers as used by the FxA OAuth server.
const (
	ErrnoUnknownClient    = 101
	ErrnoIncorrectSecret  = 102
	ErrnoInvalidAssertion = 104
	ErrnoUnknownCode      = 105
	ErrnoMismatchedClient = 106
	ErrnoInvalidRequest   = 107
	ErrnoInvalidToken     = 108
	ErrnoInvalidScopes    = 114
)

type errorBody struct {
	Code    int    `json:"code"`
	Errno   int    `json:"errno"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// record keeps a copy of each request body and serves canned responses before
// falling through to next.
func (s *Server) record(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrnoInvalidRequest, "unreadable body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests[path] = append(s.requests[path], json.RawMessage(body))
		canned, ok := s.canned[path]
		s.mu.Unlock()

		if ok {
			writeJSON(w, canned.status, canned.body)
			return
		}
		next(w, r)
	}
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request) {
	var req oauth2.AuthorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrnoInvalidRequest, "invalid request body")
		return
	}

	client, err := s.clients.Get(req.ClientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrnoUnknownClient, "Unknown client")
		return
	}

	user, err := userFromAssertion(req.Assertion)
	if err != nil {
		writeError(w, http.StatusUnauthorized, ErrnoInvalidAssertion, "Invalid assertion")
		return
	}

	requested := scope.Parse(req.Scope)
	if requested.IsEmpty() {
		requested = client.Scopes
	}
	if !client.Allows(requested) {
		writeError(w, http.StatusBadRequest, ErrnoInvalidScopes, "Requested scopes are not allowed")
		return
	}
	g := grant{user: user, clientID: client.ID, scope: requested}

	if req.ResponseType == oauth2.TokenResponseType {
		writeJSON(w, http.StatusOK, oauth2.TokenResponse{
			AccessToken: s.newToken(g),
			TokenType:   "bearer",
			Scope:       requested.String(),
			AuthAt:      time.Now().Unix(),
		})
		return
	}

	redirect, err := url.Parse(client.RedirectURI)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrnoInvalidRequest, "bad redirect uri")
		return
	}
	q := redirect.Query()
	q.Set(oauth2.FieldCode, s.newCode(g))
	q.Set("state", req.State)
	redirect.RawQuery = q.Encode()

	writeJSON(w, http.StatusOK, oauth2.AuthorizationResponse{Redirect: redirect.String()})
}

func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	var req oauth2.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrnoInvalidRequest, "invalid request body")
		return
	}

	client, err := s.clients.Get(req.ClientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrnoUnknownClient, "Unknown client")
		return
	}
	if err := client.CheckSecret(req.ClientSecret); err != nil {
		writeError(w, http.StatusBadRequest, ErrnoIncorrectSecret, "Incorrect secret")
		return
	}

	g, ok := s.consumeCode(req.Code)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrnoUnknownCode, "Unknown code")
		return
	}
	if g.clientID != client.ID {
		writeError(w, http.StatusBadRequest, ErrnoMismatchedClient, "Incorrect code")
		return
	}

	writeJSON(w, http.StatusOK, oauth2.TokenResponse{
		AccessToken: s.newToken(g),
		TokenType:   "bearer",
		Scope:       g.scope.String(),
		AuthAt:      time.Now().Unix(),
	})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	var req oauth2.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrnoInvalidRequest, "invalid request body")
		return
	}

	g, ok := s.lookupToken(req.Token)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrnoInvalidToken, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, oauth2.VerifyResponse{
		User:     g.user,
		Scope:    g.scope,
		ClientID: g.clientID,
	})
}

func (s *Server) destroy(w http.ResponseWriter, r *http.Request) {
	var req oauth2.DestroyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrnoInvalidRequest, "invalid request body")
		return
	}
	if !s.destroyToken(req.Token) {
		writeError(w, http.StatusBadRequest, ErrnoInvalidToken, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) discovery(w http.ResponseWriter, r *http.Request) {
	base := s.URL
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                                base,
		"authorization_endpoint":                base + oauth2.AuthorizationPath,
		"token_endpoint":                        base + oauth2.TokenPath,
		"introspection_endpoint":                base + "/v1/introspect",
		"revocation_endpoint":                   base + oauth2.DestroyPath,
		"userinfo_endpoint":                     base + "/v1/profile",
		"jwks_uri":                              base + "/v1/jwks",
		"response_types_supported":              []string{"code", "token"},
		"subject_types_supported":               []string{"public"},
		"id_token_signing_alg_values_supported": []string{"RS256"},
		"scopes_supported":                      []string{"openid", "profile", "email"},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status, errno int, message string) {
	writeJSON(w, status, errorBody{
		Code:    status,
		Errno:   errno,
		Error:   http.StatusText(status),
		Message: message,
	})
}
