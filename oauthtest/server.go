// Package oauthtest provides an in-process fake of the Firefox Accounts OAuth
// server for tests. It implements enough of /v1/authorization, /v1/token,
// /v1/verify, /v1/destroy and OpenID discovery to drive the client end to end,
// and lets a test replace any endpoint with a canned response.
package oauthtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-fxa-oauth/oauth2"
	"github.com/jrsteele09/go-fxa-oauth/scope"
)

const wellKnownOpenIDConfig = "/.well-known/openid-configuration"

type grant struct {
	user     string
	clientID string
	scope    scope.Set
}

type cannedResponse struct {
	status int
	body   any
}

// Server is a running fake OAuth server.
type Server struct {
	*httptest.Server

	clients *clientRegistry

	mu       sync.Mutex
	codes    map[string]grant
	tokens   map[string]grant
	canned   map[string]cannedResponse
	requests map[string][]json.RawMessage
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		clients:  newClientRegistry(),
		codes:    make(map[string]grant),
		tokens:   make(map[string]grant),
		canned:   make(map[string]cannedResponse),
		requests: make(map[string][]json.RawMessage),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+oauth2.AuthorizationPath, s.record(oauth2.AuthorizationPath, s.authorize))
	mux.HandleFunc("POST "+oauth2.TokenPath, s.record(oauth2.TokenPath, s.token))
	mux.HandleFunc("POST "+oauth2.VerifyPath, s.record(oauth2.VerifyPath, s.verify))
	mux.HandleFunc("POST "+oauth2.DestroyPath, s.record(oauth2.DestroyPath, s.destroy))
	mux.HandleFunc("GET "+wellKnownOpenIDConfig, s.discovery)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// RegisterClient adds a client. An empty secret registers a public client.
func (s *Server) RegisterClient(id, secret, redirectURI string, scopes ...string) (*Client, error) {
	return s.clients.Register(id, secret, redirectURI, scope.Parse(scopes...))
}

// IssueToken creates a live access token without going through a flow.
func (s *Server) IssueToken(user, clientID string, scopes ...string) string {
	return s.newToken(grant{user: user, clientID: clientID, scope: scope.Parse(scopes...)})
}

// RespondWith makes path answer every request with status and body, bypassing
// the fake's own logic. A nil body sends an empty response.
func (s *Server) RespondWith(path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[path] = cannedResponse{status: status, body: body}
}

// Reset removes canned responses.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned = make(map[string]cannedResponse)
}

// Requests returns the raw JSON bodies received on path, oldest first.
func (s *Server) Requests(path string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.requests[path]...)
}

// TokenCount returns the number of live tokens.
func (s *Server) TokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func (s *Server) newCode(g grant) string {
	code := randomHex()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = g
	return code
}

// consumeCode removes and returns the grant for code; codes are single use.
func (s *Server) consumeCode(code string) (grant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.codes[code]
	delete(s.codes, code)
	return g, ok
}

func (s *Server) newToken(g grant) string {
	token := randomHex()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = g
	return token
}

func (s *Server) lookupToken(token string) (grant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.tokens[token]
	return g, ok
}

func (s *Server) destroyToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	delete(s.tokens, token)
	return ok
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
