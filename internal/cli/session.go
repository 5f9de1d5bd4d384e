package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session lifecycle commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionCloseCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionSpawnCmd())
	cmd.AddCommand(newSessionKillCmd())
	cmd.AddCommand(newSessionSettleCmd())
	cmd.AddCommand(newSessionSettleSpawnsCmd())
	cmd.AddCommand(newSessionRefundCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var bet uint64
	var mode string

	cmd := &cobra.Command{
		Use:   "create <session-id>",
		Short: "Create a new wager session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"session_id": args[0],
				"bet_amount": bet,
				"mode":       mode,
			}
			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&bet, "bet", 0, "Stake per player (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Game mode, e.g. wta-1v1 or pts-3v3 (required)")
	_ = cmd.MarkFlagRequired("bet")
	_ = cmd.MarkFlagRequired("mode")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List live sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionList

			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <session-id>",
		Short: "Archive a settled or refunded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sessions/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("session %s closed", args[0]))
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	var team int

	cmd := &cobra.Command{
		Use:   "join <session-id>",
		Short: "Join a session, staking the bet amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"team": team}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&team, "team", 0, "Team index to join")

	return cmd
}

func newSessionSpawnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spawn <session-id>",
		Short: "Buy another spawn allowance (pay-to-spawn modes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/spawns", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionKillCmd() *cobra.Command {
	var killer, victim string
	var killerTeam, victimTeam int

	cmd := &cobra.Command{
		Use:   "kill <session-id>",
		Short: "Record a kill (authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"killer_team": killerTeam,
				"killer":      killer,
				"victim_team": victimTeam,
				"victim":      victim,
			}

			if err := client.Post("/api/v1/sessions/"+args[0]+"/kills", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("kill recorded: %s -> %s", killer, victim))
			return nil
		},
	}

	cmd.Flags().StringVar(&killer, "killer", "", "Killer account (required)")
	cmd.Flags().IntVar(&killerTeam, "killer-team", 0, "Killer's team index")
	cmd.Flags().StringVar(&victim, "victim", "", "Victim account (required)")
	cmd.Flags().IntVar(&victimTeam, "victim-team", 0, "Victim's team index")
	_ = cmd.MarkFlagRequired("killer")
	_ = cmd.MarkFlagRequired("victim")

	return cmd
}

func newSessionSettleCmd() *cobra.Command {
	var team int
	var recipients []string

	cmd := &cobra.Command{
		Use:   "settle <session-id>",
		Short: "Settle a winner-takes-all session (authority only)",
		Long: `Settle pays the whole pot to the winning team.

Recipients must list the winning team's members in the order they
joined the session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"winning_team": team,
				"recipients":   recipients,
			}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/settle", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&team, "team", 0, "Winning team index")
	cmd.Flags().StringSliceVar(&recipients, "recipients", nil, "Winning players in join order (required)")
	_ = cmd.MarkFlagRequired("recipients")

	return cmd
}

func newSessionSettleSpawnsCmd() *cobra.Command {
	var recipients []string

	cmd := &cobra.Command{
		Use:   "settle-spawns <session-id>",
		Short: "Settle a pay-to-spawn session by performance (authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"recipients": recipients}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/settle-by-spawns", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&recipients, "recipients", nil, "All players in join order (required)")
	_ = cmd.MarkFlagRequired("recipients")

	return cmd
}

func newSessionRefundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refund <session-id>",
		Short: "Cancel a session and return all stakes (authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/refund", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
