package cli

import (
	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account funding commands",
	}

	cmd.AddCommand(newAccountDepositCmd())
	cmd.AddCommand(newAccountBalanceCmd())

	return cmd
}

func newAccountDepositCmd() *cobra.Command {
	var amount uint64

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit funds into your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]uint64{"amount": amount}
			var result Balance

			if err := client.Post("/api/v1/accounts/deposit", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&amount, "amount", 0, "Amount to deposit (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newAccountBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Balance

			if err := client.Get("/api/v1/accounts/me/balance", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
