// Package cli implements the TaskFlow command line interface. All
// commands talk to a running TaskFlow server through the sync client.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskflow/taskflow/pkg/client"
)

var (
	serverURL string
	verbose   bool
	logger    *slog.Logger

	apiClient *client.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - a task tracker with a synced local view",
	Long: `TaskFlow is a command line client for the TaskFlow server.

Log in once with 'taskflow login'; the session token is stored under
~/.taskflow and reused by every other command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
		if apiClient == nil {
			apiClient = client.New(client.Config{
				BaseURL: serverURL,
				Logger:  logger,
			})
		}
		if token, err := loadSessionToken(); err == nil && token != "" {
			apiClient.Restore(token)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "TaskFlow server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetClient overrides the API client, for tests.
func SetClient(c *client.Client) {
	apiClient = c
}

// GetClient returns the API client shared by all commands.
func GetClient() *client.Client {
	return apiClient
}
