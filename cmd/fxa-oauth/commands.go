package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/go-fxa-oauth/internal/config"
	"github.com/jrsteele09/go-fxa-oauth/oauthclient"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	serverURL    string
	clientID     string
	clientSecret string
	scope        string
	banner       bool
}

func newRootCmd(c config.Config, out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "fxa-oauth",
		Short:        "Talk to a Firefox Accounts OAuth server",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.banner {
				displayAppname(c.GetAppName())
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.serverURL, "server", c.GetServerURL(), "OAuth server base URL (default production)")
	flags.StringVar(&opts.clientID, "client-id", c.GetClientID(), "OAuth client id")
	flags.StringVar(&opts.clientSecret, "client-secret", c.GetClientSecret(), "OAuth client secret")
	flags.StringVar(&opts.scope, "scope", "", "space separated scopes to request or require")
	flags.BoolVar(&opts.banner, "banner", false, "print the application banner")

	newClient := func() *oauthclient.Client {
		return oauthclient.New(
			oauthclient.Config{
				ClientID:     opts.clientID,
				ClientSecret: opts.clientSecret,
				ServerURL:    opts.serverURL,
			},
			oauthclient.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		)
	}
	scopeOpts := func() []oauthclient.CallOption {
		if opts.scope == "" {
			return nil
		}
		return []oauthclient.CallOption{oauthclient.WithScope(opts.scope)}
	}

	root.AddCommand(
		newRedirectURLCmd(newClient, scopeOpts),
		&cobra.Command{
			Use:   "trade-code CODE",
			Short: "Exchange an authorization code for an access token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := newClient().ExchangeCode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				cmd.Println(token)
				return nil
			},
		},
		&cobra.Command{
			Use:   "assertion-code ASSERTION",
			Short: "Exchange an identity assertion for an authorization code (testing only)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code, err := newClient().AuthorizeCodeFromAssertion(cmd.Context(), args[0], scopeOpts()...)
				if err != nil {
					return err
				}
				cmd.Println(code)
				return nil
			},
		},
		&cobra.Command{
			Use:   "assertion-token ASSERTION",
			Short: "Exchange an identity assertion for an access token (testing only)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := newClient().AuthorizeTokenFromAssertion(cmd.Context(), args[0], scopeOpts()...)
				if err != nil {
					return err
				}
				cmd.Println(token)
				return nil
			},
		},
		&cobra.Command{
			Use:   "verify TOKEN",
			Short: "Verify an access token, optionally requiring --scope",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				info, err := newClient().VerifyToken(cmd.Context(), args[0], scopeOpts()...)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"user":      info.User,
					"scope":     info.Scope,
					"client_id": info.ClientID,
				})
			},
		},
		&cobra.Command{
			Use:   "destroy TOKEN",
			Short: "Revoke an access token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return newClient().DestroyToken(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "discover [ISSUER]",
			Short: "Fetch the OpenID discovery document",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				issuer := ""
				if len(args) == 1 {
					issuer = args[0]
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), c.GetDiscoveryTimeout())
				defer cancel()

				meta, err := newClient().Discover(ctx, issuer)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), meta)
			},
		},
	)
	return root
}

func newRedirectURLCmd(newClient func() *oauthclient.Client, scopeOpts func() []oauthclient.CallOption) *cobra.Command {
	var state, redirectURI, action, email string

	cmd := &cobra.Command{
		Use:   "redirect-url",
		Short: "Print the authorization URL to send a user to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			opts := scopeOpts()
			if redirectURI != "" {
				opts = append(opts, oauthclient.WithRedirectURI(redirectURI))
			}
			if action != "" {
				opts = append(opts, oauthclient.WithAction(action))
			}
			if email != "" {
				opts = append(opts, oauthclient.WithEmail(email))
			}
			cmd.Println(newClient().BuildRedirectURL(state, opts...))
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "opaque state echoed back on the redirect")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "registered redirect URI")
	cmd.Flags().StringVar(&action, "action", "", "signin or signup")
	cmd.Flags().StringVar(&email, "email", "", "email to pre-fill")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
