package main

import (
	"errors"
	"fmt"
	"time"

	"daycare-log/internal/adapters/auth/jwtverifier"
	"daycare-log/internal/platform/config"

	"github.com/spf13/cobra"
)

type tokenOptions struct {
	UserID string
	Email  string
	TTL    time.Duration
}

// token emite un bearer token firmado con el secreto configurado (útil en staging).
func addToken(topLevel *cobra.Command) {
	to := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for a user",
		Example: `
DAYCARE_AUTH_JWT_SECRET=... daycare-log token --user demo-teacher
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to.UserID == "" {
				return errors.New("--user is required")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			v, err := jwtverifier.New(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
			if err != nil {
				return err
			}
			tok, err := v.Sign(to.UserID, to.Email, to.TTL, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&to.UserID, "user", "", "user id (token subject)")
	cmd.Flags().StringVar(&to.Email, "email", "", "email claim")
	cmd.Flags().DurationVar(&to.TTL, "ttl", 12*time.Hour, "token lifetime")

	topLevel.AddCommand(cmd)
}
