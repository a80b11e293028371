package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryanrite/att-speech/pkg/att"
	"github.com/bryanrite/att-speech/pkg/cli"
	"github.com/bryanrite/att-speech/pkg/jsontree"
)

var tokenScope string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Run the OAuth token exchange",
	Long: `Exchange the context's key and secret for an access token and print
the result with the tokens masked. Useful to check credentials.

Examples:
  attspeech -c myapp token
  attspeech -c myapp token --scope TTS --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		scope := att.Scope(strings.ToUpper(tokenScope))
		if !scope.Valid() {
			return fmt.Errorf("--scope must be %s or %s", att.ScopeSpeech, att.ScopeTTS)
		}

		reqCtx, cancel := withTimeout(cmd.Context())
		defer cancel()

		client, err := createClient(reqCtx, ctx, scope)
		if err != nil {
			return fmt.Errorf("token exchange failed: %w", err)
		}

		tok := client.Token()
		result := jsontree.NewObject()
		result.Set("context", ctx.Name)
		result.Set("base_url", client.BaseURL())
		result.Set("scope", string(client.Scope()))
		result.Set("ssl_verify", client.SSLVerify())
		result.Set("token_type", tok.TokenType)
		result.Set("access_token", cli.MaskAPIKey(tok.AccessToken))
		result.Set("refresh_token", cli.MaskAPIKey(tok.RefreshToken))
		if expiresIn := tok.Extra("expires_in"); expiresIn != nil {
			result.Set("expires_in", expiresIn)
		}

		return outputResult(result, global.output)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenScope, "scope", string(att.ScopeSpeech), "OAuth scope (SPEECH or TTS)")
}
