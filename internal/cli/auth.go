package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/planfold/planfold/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Manage the stored Planfold session.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the Planfold server",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear the stored session",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().String("server", "", "Server URL to log in against")
}

func runLogin(cmd *cobra.Command, args []string) error {
	creds, err := api.LoadCredentials()
	if err != nil {
		return err
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		creds.ServerURL = server
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	result, err := client.Login(context.Background(), email, string(passwordBytes))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	creds.Token = result.Token
	creds.UserID = result.UserID
	creds.Email = email
	if err := creds.Save(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	fmt.Println("✅ Logged in successfully!")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	creds, err := api.LoadCredentials()
	if err != nil {
		return err
	}
	if !creds.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	// Best effort: clear locally even if the server call fails.
	_ = client.Logout(context.Background())

	if err := creds.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	fmt.Println("👋 Logged out.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds, err := api.LoadCredentials()
	if err != nil {
		return err
	}

	fmt.Printf("Server: %s\n", creds.ServerURL)
	if !creds.LoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}
	if user, err := client.Me(context.Background()); err == nil {
		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	} else {
		// Offline or expired session: fall back to the stored identity.
		fmt.Printf("Logged in as %s (%s)\n", creds.Email, creds.UserID)
	}
	return nil
}
