package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taskflow/taskflow/adapter/cli"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task between done and not done",
	Long: `Toggle a task's status. A completed task reopens as pending;
anything else completes.

Examples:
  taskflow task done 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"toggle"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		toggled, err := cli.GetClient().ToggleTask(cmd.Context(), taskID)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		fmt.Printf("Task is now %s: %s\n", toggled.Status, toggled.Title)
		return nil
	},
}
