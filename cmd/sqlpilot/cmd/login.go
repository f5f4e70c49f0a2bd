package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache the session for later commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pilotApp == nil {
			return fmt.Errorf("app not initialized")
		}

		email := loginEmail
		if email == "" {
			var err error
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}

		password := loginPassword
		if password == "" {
			var err error
			password, err = promptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		if err := pilotApp.Auth.Login(context.Background(), email, password); err != nil {
			return err
		}

		user := pilotApp.Auth.User()
		if user == nil {
			return fmt.Errorf("login did not establish a session")
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pilotApp == nil {
			return fmt.Errorf("app not initialized")
		}
		pilotApp.Auth.Logout()
		fmt.Println("Signed out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pilotApp == nil {
			return fmt.Errorf("app not initialized")
		}

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		username, err := promptLine("Username: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if err := pilotApp.Auth.Register(context.Background(), email, username, password); err != nil {
			return err
		}

		if user := pilotApp.Auth.User(); user != nil {
			fmt.Printf("Account created, signed in as %s\n", user.Username)
		} else {
			fmt.Println("Account created")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
}

// promptLine reads one line of input from the terminal
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
