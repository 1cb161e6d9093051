package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quicknote/internal/notepad/adapters/services"
)

// ErrNoAPISecret возвращается, когда защита API не настроена.
var ErrNoAPISecret = errors.New("QUICKNOTE_SECURITY_API_SECRET is not set")

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the local API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Security.APISecret == "" {
			return ErrNoAPISecret
		}

		token, err := services.NewJWT(cfg.Security.APISecret).IssueToken(tokenSubject, cfg.Security.TokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "token subject")
	rootCmd.AddCommand(tokenCmd)
}
