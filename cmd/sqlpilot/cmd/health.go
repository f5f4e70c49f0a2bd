package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pilotApp == nil {
			return fmt.Errorf("app not initialized")
		}

		health, err := pilotApp.Client.Health(context.Background())
		if err != nil {
			return fmt.Errorf("backend at %s is unreachable: %w", pilotApp.Client.BaseURL(), err)
		}

		fmt.Printf("Status:   %s\n", health.Status)
		if health.Database != "" {
			fmt.Printf("Database: %s\n", health.Database)
		}
		fmt.Printf("Training: %d entries\n", health.TrainingDataCount)
		if health.Version != "" {
			fmt.Printf("Version:  %s\n", health.Version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
