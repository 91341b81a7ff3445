package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Game history commands",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryGetCmd())
	cmd.AddCommand(newHistoryDeleteCmd())

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <code>",
		Short: "List a room's completed games and player totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result History

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/history", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHistoryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code> <record-id>",
		Short: "Show a completed game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameRecord

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/history/%s", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code> <record-id>",
		Short: "Delete a completed game record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/history/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted record %s", args[1]))
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "report <code>",
		Short: "Fetch the printable HTML report for a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := client.GetRaw(fmt.Sprintf("/api/v1/rooms/%s/report", args[0]))
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, body, 0644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				out := NewOutput(cfg.Output)
				out.PrintMessage(fmt.Sprintf("Report written to %s", outFile))
				return nil
			}

			fmt.Print(string(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "file", "", "Write the report to a file instead of stdout")

	return cmd
}
