package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Long: `Show counts derived from your task list: total, pending and
completed. In-progress tasks count toward the total only.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetClient()
		if err := c.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}

		stats := c.Stats()
		fmt.Printf("Total:     %d\n", stats.Total)
		fmt.Printf("Pending:   %d\n", stats.Pending)
		fmt.Printf("Completed: %d\n", stats.Completed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
