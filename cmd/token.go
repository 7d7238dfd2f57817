// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/autocrm/internal/tracing"
)

type tokenOutput struct {
	AccessToken string    `json:"access_token" yaml:"access_token"`
	TokenType   string    `json:"token_type" yaml:"token_type"`
	Expiry      time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
}

// tokenCmd mints a JWT for machine clients of the api, e.g. integrations
// filing tickets for a company.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an api access token with the client credentials flow",
	Long: `Requests an access token for a machine client. The issuer defaults to
$JWT_ISSUER and the scope to $JWT_REQUIRED_SCOPE, the same values serve uses
to accept the token. The client secret is read from --client-secret or
$CLIENT_SECRET.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := oidc.ClientContext(cmd.Context(), tracing.NewHTTPClient())

		clientID, _ := cmd.Flags().GetString("client-id")
		tokenURL, _ := cmd.Flags().GetString("token-url")
		scopes, _ := cmd.Flags().GetStringSlice("scopes")
		secret := flagOrEnv(cmd, "client-secret", "CLIENT_SECRET")
		issuer := flagOrEnv(cmd, "issuer-url", "JWT_ISSUER")

		if secret == "" {
			return errors.New("a client secret is required, pass --client-secret or set CLIENT_SECRET")
		}
		if len(scopes) == 0 {
			if scope := os.Getenv("JWT_REQUIRED_SCOPE"); scope != "" {
				scopes = []string{scope}
			}
		}

		if tokenURL == "" {
			var err error
			if tokenURL, err = discoverTokenURL(ctx, issuer); err != nil {
				return err
			}
		}

		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}

		return render(cmd, newTokenOutput(token), func(w io.Writer) {
			fmt.Fprintln(w, token.AccessToken)
		})
	},
}

func discoverTokenURL(ctx context.Context, issuer string) (string, error) {
	if issuer == "" {
		return "", errors.New("either --token-url or --issuer-url must be provided")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return "", fmt.Errorf("failed to discover %s: %w", issuer, err)
	}

	return provider.Endpoint().TokenURL, nil
}

func newTokenOutput(t *oauth2.Token) tokenOutput {
	return tokenOutput{AccessToken: t.AccessToken, TokenType: t.Type(), Expiry: t.Expiry}
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("client-id", "", "Client ID")
	tokenCmd.Flags().String("client-secret", "", "Client secret, defaults to $CLIENT_SECRET")
	tokenCmd.Flags().String("token-url", "", "Token endpoint, discovered from the issuer when empty")
	tokenCmd.Flags().String("issuer-url", "", "OIDC issuer, defaults to $JWT_ISSUER")
	tokenCmd.Flags().StringSlice("scopes", nil, "Scopes (comma-separated), defaults to $JWT_REQUIRED_SCOPE")

	_ = tokenCmd.MarkFlagRequired("client-id")
}
