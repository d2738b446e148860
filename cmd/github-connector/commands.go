package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/giantswarm/social-connector/configsource"
	"github.com/giantswarm/social-connector/providers"
	"github.com/giantswarm/social-connector/providers/github"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newMetadataCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Print the connector metadata",
		Long: `Prints the connector descriptor as JSON. With --locale only the ID and the
name and description best matching the locale are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			md := github.DefaultMetadata()
			if locale == "" {
				return writeJSON(cmd.OutOrStdout(), md)
			}

			tag, err := language.Parse(locale)
			if err != nil {
				return fmt.Errorf("invalid --locale %q: %w", locale, err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				"id":          md.ID,
				"name":        md.LocalizedName(tag),
				"description": md.LocalizedDescription(tag),
			})
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale, e.g. zh-CN")
	return cmd
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-json]",
		Short: "Validate a connector configuration",
		Long: `Validates the given JSON document, or the configuration read from the
configured source when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := opts.connector(cmd)
			if err != nil {
				return err
			}

			var raw any
			if len(args) == 1 {
				raw = json.RawMessage(args[0])
			} else {
				configs, err := opts.configProvider()
				if err != nil {
					return err
				}
				raw, err = configs.GetConfig(cmd.Context(), github.ConnectorID)
				if err != nil {
					return err
				}
			}

			if err := conn.ValidateConfig(raw); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "config is valid")
			return err
		},
	}
}

func newAuthorizeURLCmd(opts *options) *cobra.Command {
	var redirectURI, state string

	cmd := &cobra.Command{
		Use:   "authorize-url",
		Short: "Print the GitHub authorization URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := opts.connector(cmd)
			if err != nil {
				return err
			}

			uri, err := conn.AuthorizationURI(cmd.Context(), redirectURI, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}

	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "callback URL registered with the OAuth App")
	cmd.Flags().StringVar(&state, "state", "", "opaque anti-CSRF value")
	_ = cmd.MarkFlagRequired("redirect-uri")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newExchangeCmd(opts *options) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := opts.connector(cmd)
			if err != nil {
				return err
			}

			token, err := conn.AccessToken(cmd.Context(), code)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), token)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "authorization code from the GitHub redirect")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newUserInfoCmd(opts *options) *cobra.Command {
	var accessToken string

	cmd := &cobra.Command{
		Use:   "userinfo",
		Short: "Fetch the profile of an access token's owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := opts.connector(cmd)
			if err != nil {
				return err
			}

			info, err := conn.UserInfo(cmd.Context(), &providers.AccessTokenResult{AccessToken: accessToken})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "", "GitHub access token")
	_ = cmd.MarkFlagRequired("access-token")
	return cmd
}

func newSealCmd(opts *options) *cobra.Command {
	var clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a connector configuration for --sealed-config",
		Long: `Encrypts the client credentials with a key derived from <PREFIX>MASTER_KEY
(32 bytes, base64) and prints the ciphertext. The configuration is validated
before it is sealed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := providers.ClientConfig{ClientID: clientID, ClientSecret: clientSecret}
			if _, err := providers.ParseClientConfig(cfg); err != nil {
				return err
			}

			key, err := opts.masterKey()
			if err != nil {
				return err
			}
			sealed, err := configsource.NewSealed(key)
			if err != nil {
				return err
			}

			ciphertext, err := sealed.Seal(github.ConnectorID, cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
			return err
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth App client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth App client secret")
	_ = cmd.MarkFlagRequired("client-id")
	_ = cmd.MarkFlagRequired("client-secret")
	return cmd
}
