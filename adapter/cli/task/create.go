package task

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskflow/taskflow/adapter/cli"
)

var createDescription string

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Long: `Create a new task. New tasks start in the pending status.

Examples:
  taskflow task create "Buy milk"
  taskflow task create "Write report" --description "Q3 numbers"`,
	Aliases: []string{"add", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := cli.GetClient().CreateTask(cmd.Context(), args[0], createDescription)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Println("Task created!")
		fmt.Printf("  ID:     %s\n", created.ID)
		fmt.Printf("  Title:  %s\n", created.Title)
		fmt.Printf("  Status: %s\n", created.Status)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "task description")
}
