package oauthtest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-fxa-oauth/oauthtest"
	"github.com/jrsteele09/go-fxa-oauth/scope"
	"github.com/stretchr/testify/require"
)

const (
	clientID    = "client-1"
	secret      = "secret-1"
	redirectURI = "https://rp.example.com/callback"
	user        = "user-1"
)

func post(t *testing.T, srv *oauthtest.Server, path string, body any) (int, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func setup(t *testing.T) *oauthtest.Server {
	t.Helper()
	srv := oauthtest.NewServer(t)
	_, err := srv.RegisterClient(clientID, secret, redirectURI, "profile", "openid")
	require.NoError(t, err)
	return srv
}

func TestServer_AuthorizationCodeFlow(t *testing.T) {
	srv := setup(t)
	assertion, err := oauthtest.MakeAssertion(user, srv.URL)
	require.NoError(t, err)

	status, body := post(t, srv, "/v1/authorization", map[string]string{
		"client_id": clientID,
		"assertion": assertion,
		"state":     "x",
		"scope":     "profile",
	})
	require.Equal(t, http.StatusOK, status)

	redirect, err := url.Parse(body["redirect"].(string))
	require.NoError(t, err)
	require.Equal(t, "rp.example.com", redirect.Host)
	require.Equal(t, "x", redirect.Query().Get("state"))
	code := redirect.Query().Get("code")
	require.NotEmpty(t, code)

	status, body = post(t, srv, "/v1/token", map[string]string{
		"client_id":     clientID,
		"client_secret": secret,
		"code":          code,
	})
	require.Equal(t, http.StatusOK, status)
	token := body["access_token"].(string)
	require.Equal(t, "profile", body["scope"])

	status, body = post(t, srv, "/v1/verify", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, user, body["user"])
	require.Equal(t, clientID, body["client_id"])
	require.Equal(t, []any{"profile"}, body["scope"])
}

func TestServer_Errors(t *testing.T) {
	srv := setup(t)
	assertion, err := oauthtest.MakeAssertion(user, srv.URL)
	require.NoError(t, err)

	t.Run("unknown client", func(t *testing.T) {
		status, body := post(t, srv, "/v1/authorization", map[string]string{"client_id": "nope", "assertion": assertion})
		require.Equal(t, http.StatusBadRequest, status)
		require.EqualValues(t, oauthtest.ErrnoUnknownClient, body["errno"])
	})

	t.Run("bad assertion", func(t *testing.T) {
		status, body := post(t, srv, "/v1/authorization", map[string]string{"client_id": clientID, "assertion": "garbage"})
		require.Equal(t, http.StatusUnauthorized, status)
		require.EqualValues(t, oauthtest.ErrnoInvalidAssertion, body["errno"])
	})

	t.Run("scope not allowed", func(t *testing.T) {
		status, body := post(t, srv, "/v1/authorization", map[string]string{"client_id": clientID, "assertion": assertion, "scope": "sync"})
		require.Equal(t, http.StatusBadRequest, status)
		require.EqualValues(t, oauthtest.ErrnoInvalidScopes, body["errno"])
	})

	t.Run("unknown code", func(t *testing.T) {
		status, body := post(t, srv, "/v1/token", map[string]string{"client_id": clientID, "client_secret": secret, "code": "nope"})
		require.Equal(t, http.StatusBadRequest, status)
		require.EqualValues(t, oauthtest.ErrnoUnknownCode, body["errno"])
	})

	t.Run("invalid token", func(t *testing.T) {
		status, body := post(t, srv, "/v1/verify", map[string]string{"token": "nope"})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid token", body["message"])
	})
}

func TestServer_TokenResponseAndDestroy(t *testing.T) {
	srv := setup(t)
	assertion, err := oauthtest.MakeAssertion(user, srv.URL)
	require.NoError(t, err)

	status, body := post(t, srv, "/v1/authorization", map[string]string{
		"client_id":     clientID,
		"assertion":     assertion,
		"response_type": "token",
	})
	require.Equal(t, http.StatusOK, status)
	token := body["access_token"].(string)
	require.Equal(t, "profile openid", body["scope"])
	require.Equal(t, 1, srv.TokenCount())

	status, _ = post(t, srv, "/v1/destroy", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, srv.TokenCount())
}

func TestServer_RespondWith(t *testing.T) {
	srv := setup(t)
	srv.RespondWith("/v1/token", http.StatusOK, map[string]string{"token_type": "bearer"})

	status, body := post(t, srv, "/v1/token", map[string]string{"code": "c"})
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, "access_token")
	require.Len(t, srv.Requests("/v1/token"), 1)

	srv.Reset()
	status, _ = post(t, srv, "/v1/token", map[string]string{"code": "c"})
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, srv.Requests("/v1/token"), 2)
}

func TestServer_IssueToken(t *testing.T) {
	srv := setup(t)
	token := srv.IssueToken(user, clientID, "profile:write")

	status, body := post(t, srv, "/v1/verify", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []any{"profile:write"}, body["scope"])
}

func TestClient(t *testing.T) {
	srv := oauthtest.NewServer(t)

	confidential, err := srv.RegisterClient("c1", secret, redirectURI, "profile")
	require.NoError(t, err)
	require.False(t, confidential.IsPublic())
	require.NoError(t, confidential.CheckSecret(secret))
	require.ErrorIs(t, confidential.CheckSecret("wrong"), oauthtest.ErrBadSecret)
	require.True(t, confidential.Allows(scope.Parse("profile/email")))
	require.False(t, confidential.Allows(scope.Parse("openid")))

	public, err := srv.RegisterClient("c2", "", redirectURI)
	require.NoError(t, err)
	require.True(t, public.IsPublic())
	require.NoError(t, public.CheckSecret("anything"))
}
