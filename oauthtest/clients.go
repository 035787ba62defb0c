package oauthtest

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-fxa-oauth/scope"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnknownClient = errors.New("unknown client")
	ErrBadSecret     = errors.New("incorrect client secret")
)

// Client is an OAuth client registered with the fake server.
type Client struct {
	ID          string
	RedirectURI string
	Scopes      scope.Set // Allowed scopes for this client

	secretHash []byte
}

// IsPublic returns true if the client was registered without a secret.
func (c *Client) IsPublic() bool {
	return len(c.secretHash) == 0
}

// CheckSecret compares secret against the stored hash. Public clients accept any value.
func (c *Client) CheckSecret(secret string) error {
	if c.IsPublic() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(c.secretHash, []byte(secret)); err != nil {
		return ErrBadSecret
	}
	return nil
}

// Allows reports whether the client may be granted every scope in requested.
func (c *Client) Allows(requested scope.Set) bool {
	return scope.Matches(c.Scopes, requested)
}

type clientRegistry struct {
	clients map[string]*Client
	lock    sync.RWMutex
}

func newClientRegistry() *clientRegistry {
	return &clientRegistry{
		clients: make(map[string]*Client),
	}
}

func (r *clientRegistry) Register(id, secret, redirectURI string, scopes scope.Set) (*Client, error) {
	c := &Client{
		ID:          id,
		RedirectURI: redirectURI,
		Scopes:      scopes,
	}
	if secret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		c.secretHash = hash
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.clients[id] = c
	return c, nil
}

func (r *clientRegistry) Get(id string) (*Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrUnknownClient
	}
	return c, nil
}
