package task

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/taskflow/taskflow/adapter/cli"
	"github.com/taskflow/taskflow/pkg/client"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task",
	Long: `Update a task's title, description or status. Only the flags
you pass are changed.

Examples:
  taskflow task update 550e8400-e29b-41d4-a716-446655440000 --title "New title"
  taskflow task update 550e8400-e29b-41d4-a716-446655440000 --status in-progress`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		var patch client.TaskPatch
		if cmd.Flags().Changed("title") {
			patch.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &updateDescription
		}
		if cmd.Flags().Changed("status") {
			patch.Status = &updateStatus
		}

		updated, err := cli.GetClient().UpdateTask(cmd.Context(), taskID, patch)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Println("Task updated!")
		fmt.Printf("  Title:  %s\n", updated.Title)
		fmt.Printf("  Status: %s\n", updated.Status)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status (pending, in-progress, completed)")
}
