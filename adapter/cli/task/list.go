package task

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/taskflow/taskflow/adapter/cli"
)

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Long: `List all your tasks in creation order.

Examples:
  taskflow task list
  taskflow task list --status pending`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetClient()
		if err := c.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}

		tasks := c.Tasks()
		if listStatus != "" {
			filtered := tasks[:0]
			for _, t := range tasks {
				if t.Status == listStatus {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tCREATED")
		for _, t := range tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				t.ID, t.Status, t.Title, t.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, in-progress, completed)")
}
