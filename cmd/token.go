package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenEmail  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a user",
	Long:  "Signs an access token with JWT_SECRET, for local development and scripted tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		token, err := newJWTManager(cfg).GenerateAccessToken(tokenUserID, tokenEmail)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "user id to embed in the token")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email to embed in the token")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)
}
