package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game play commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameRoundCmd())
	cmd.AddCommand(newGameUndoCmd())
	cmd.AddCommand(newGameRejoinCmd())
	cmd.AddCommand(newGameFinishCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRoundCmd() *cobra.Command {
	var winner string
	var scores []string
	var multiplier string

	cmd := &cobra.Command{
		Use:   "round <code>",
		Short: "Submit a round",
		Long: `Submit a completed round.

The round winner scores nothing; every other active player's points are
given with repeated --score flags as player-id=points. An empty value or
0 means the player contributed nothing; if every active non-winner
contributed nothing the winner takes the whole pot immediately.

Multipliers: normal (x1), dedi (x1.5), double (x2), chaubar (x4).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoreMap := map[string]string{}
			for _, s := range scores {
				id, val, found := strings.Cut(s, "=")
				if !found {
					return fmt.Errorf("invalid --score %q, expected player-id=points", s)
				}
				scoreMap[id] = val
			}

			req := map[string]any{
				"winner_id": winner,
				"scores":    scoreMap,
			}
			if multiplier != "" {
				req["multiplier"] = multiplier
			}

			var result RoundResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/rounds", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&winner, "winner", "", "Round winner's player ID (required)")
	cmd.Flags().StringArrayVar(&scores, "score", nil, "Player score as player-id=points (repeatable)")
	cmd.Flags().StringVar(&multiplier, "multiplier", "", "Round multiplier: normal, dedi, double, chaubar")
	_ = cmd.MarkFlagRequired("winner")

	return cmd
}

func newGameUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <code>",
		Short: "Undo the most recent round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UndoResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/rounds/undo", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRejoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rejoin <code> <player-id>",
		Short: "Buy an eliminated player back in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/players/%s/rejoin", args[0], args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <code>",
		Short: "Finish the game and settle the pot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FinishResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/finish", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <code>",
		Short: "Abandon the game without recording a result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/reset", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
