// Package task implements the 'taskflow task' command group.
package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for task operations.
var Cmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage your tasks",
	Aliases: []string{"tasks", "t"},
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(doneCmd)
	Cmd.AddCommand(deleteCmd)
}
