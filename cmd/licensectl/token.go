package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "licensing/internal/jwt_token"
	"licensing/internal/platform/config"
	id "licensing/pkg/domain"
	"licensing/pkg/requestcontext"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a session token for local testing",
	Long: `Mint a session token signed with the development key. Tokens minted with
the default key are rejected by a server running in production.`,
	Args: cobra.NoArgs,
	RunE: tokenCmdRun,
}

type tokenFlags struct {
	wallet     string
	sessionID  string
	signingKey string
	issuer     string
	ttl        time.Duration
}

var tokenArgs = tokenFlags{
	signingKey: config.DevSigningKey,
	issuer:     "licensing",
	ttl:        24 * time.Hour,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenArgs.wallet, "wallet", "", "Wallet the session belongs to.")
	tokenCmd.Flags().StringVar(&tokenArgs.sessionID, "session-id", "", "Session ID (UUID). Generated if empty.")
	tokenCmd.Flags().StringVar(&tokenArgs.signingKey, "signing-key", tokenArgs.signingKey, "HMAC signing key.")
	tokenCmd.Flags().StringVar(&tokenArgs.issuer, "issuer", tokenArgs.issuer, "Token issuer.")
	tokenCmd.Flags().DurationVar(&tokenArgs.ttl, "ttl", tokenArgs.ttl, "Token time-to-live.")
	_ = tokenCmd.MarkFlagRequired("wallet")
	rootCmd.AddCommand(tokenCmd)
}

type tokenOutput struct {
	Token     string `json:"token"`
	Wallet    string `json:"wallet"`
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

func tokenCmdRun(cmd *cobra.Command, _ []string) error {
	wallet, err := id.ParseWallet(tokenArgs.wallet)
	if err != nil {
		return err
	}
	sessionID := id.NewSessionID()
	if tokenArgs.sessionID != "" {
		if sessionID, err = id.ParseSessionID(tokenArgs.sessionID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	ctx := requestcontext.WithTime(context.Background(), now)
	tokens := jwttoken.NewJWTService(tokenArgs.signingKey, tokenArgs.issuer, tokenArgs.ttl)
	token, _, err := tokens.GenerateSessionToken(ctx, wallet, sessionID)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	return printJSON(cmd, tokenOutput{
		Token:     token,
		Wallet:    wallet.String(),
		SessionID: sessionID.String(),
		ExpiresAt: now.Add(tokens.TTL()).Format(time.RFC3339),
	})
}
