package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Identity management commands",
	}

	cmd.AddCommand(newIdentityRegisterCmd())
	cmd.AddCommand(newIdentityLoginCmd())

	return cmd
}

func newIdentityRegisterCmd() *cobra.Command {
	var account, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"account":  account,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/identities/register", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Account name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newIdentityLoginCmd() *cobra.Command {
	var account, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"account":  account,
				"password": pass,
			}
			var result AuthResult

			if err := client.Post("/api/v1/identities/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Account name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
