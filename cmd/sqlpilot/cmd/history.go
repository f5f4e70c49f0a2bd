package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past queries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		// Best-effort backend refresh; the cached list still prints if
		// the backend is unreachable.
		pilotApp.Query.LoadHistory(context.Background())

		queries := pilotApp.Query.History()
		if len(queries) == 0 {
			fmt.Println("No queries yet")
			return nil
		}

		shown := queries
		if historyLimit > 0 && len(shown) > historyLimit {
			shown = shown[:historyLimit]
		}

		for _, query := range shown {
			when := time.UnixMilli(query.Timestamp).Format("2006-01-02 15:04")
			fmt.Printf("%s  %s  %s\n", query.ID, when, query.Question)
		}
		if len(shown) < len(queries) {
			fmt.Printf("... and %d more\n", len(queries)-len(shown))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum entries to print (0 = all)")
	rootCmd.AddCommand(historyCmd)
}
