package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/go-fxa-oauth/internal/config"
	"github.com/jrsteele09/go-fxa-oauth/oauth2"
	"github.com/jrsteele09/go-fxa-oauth/oauthclient"
	"github.com/jrsteele09/go-fxa-oauth/oauthtest"
	"github.com/stretchr/testify/require"
)

const (
	testClientID = "cli-client"
	testSecret   = "cli-secret"
	testUser     = "cli-user"
)

func run(t *testing.T, srv *oauthtest.Server, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FXA_OAUTH_SERVER_URL", srv.URL)
	t.Setenv("FXA_CLIENT_ID", testClientID)
	t.Setenv("FXA_CLIENT_SECRET", testSecret)

	var out bytes.Buffer
	cmd := newRootCmd(config.New(), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func setup(t *testing.T) *oauthtest.Server {
	t.Helper()
	srv := oauthtest.NewServer(t)
	_, err := srv.RegisterClient(testClientID, testSecret, "https://rp.example.com/cb", "profile")
	require.NoError(t, err)
	return srv
}

func TestCLI_RedirectURL(t *testing.T) {
	srv := setup(t)
	out, err := run(t, srv, "redirect-url", "--state", "s1", "--scope", "profile", "--action", "signin")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/v1/authorization?client_id="+testClientID+"&state=s1&scope=profile&action=signin", out)
}

func TestCLI_AssertionFlow(t *testing.T) {
	srv := setup(t)
	assertion, err := oauthtest.MakeAssertion(testUser, srv.URL)
	require.NoError(t, err)

	code, err := run(t, srv, "assertion-code", assertion)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	token, err := run(t, srv, "trade-code", code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := run(t, srv, "verify", token, "--scope", "profile/email")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, testUser, info["user"])
	require.Equal(t, []any{"profile"}, info["scope"])

	_, err = run(t, srv, "destroy", token)
	require.NoError(t, err)
	require.Equal(t, 0, srv.TokenCount())
}

func TestCLI_AssertionToken(t *testing.T) {
	srv := setup(t)
	assertion, err := oauthtest.MakeAssertion(testUser, srv.URL)
	require.NoError(t, err)

	token, err := run(t, srv, "assertion-token", assertion, "--scope", "profile")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, 1, srv.TokenCount())
}

func TestCLI_Discover(t *testing.T) {
	srv := setup(t)
	out, err := run(t, srv, "discover")
	require.NoError(t, err)
	require.Contains(t, out, srv.URL+"/v1/token")
}

func TestCLI_ExitCodes(t *testing.T) {
	srv := setup(t)

	t.Run("scope mismatch", func(t *testing.T) {
		token := srv.IssueToken(testUser, testClientID, "display_name")
		_, err := run(t, srv, "verify", token, "--scope", "profile")
		require.ErrorIs(t, err, oauthclient.ErrScopeMismatch)
		require.Equal(t, exitCodeScopeMismatch, exitCode(err))
	})

	t.Run("out of protocol", func(t *testing.T) {
		srv.RespondWith(oauth2.TokenPath, http.StatusOK, map[string]string{})
		defer srv.Reset()
		_, err := run(t, srv, "trade-code", "abc")
		require.Equal(t, exitCodeOutOfProtocol, exitCode(err))
	})

	t.Run("other", func(t *testing.T) {
		require.Equal(t, exitCodeError, exitCode(errors.New("boom")))
	})
}
