package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create a TaskFlow account",
	Long: `Create a new account on the server and start a session.

Examples:
  taskflow register alice@example.com --name "Alice"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		c := GetClient()
		if err := c.Register(cmd.Context(), registerName, args[0], password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if err := saveSessionToken(c.Token()); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}

		fmt.Println("Account created. You are logged in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to TaskFlow",
	Long: `Start a session with the server. The token is stored under
~/.taskflow and reused by other commands until you log out.

Examples:
  taskflow login alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		c := GetClient()
		if err := c.Login(cmd.Context(), args[0], password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveSessionToken(c.Token()); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}

		stats := c.Stats()
		fmt.Printf("Logged in. %d tasks (%d pending, %d completed).\n",
			stats.Total, stats.Pending, stats.Completed)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		GetClient().Logout()
		if err := clearSessionToken(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func init() {
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name for the new account")
	_ = registerCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
