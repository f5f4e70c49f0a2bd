package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/render"
)

var (
	askSQLOnly bool
	askMaxRows int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question, print the generated SQL and results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		question := strings.Join(args, " ")
		query, err := pilotApp.Query.SendQuery(context.Background(), question)
		if err != nil {
			return err
		}

		if query.SQL != "" {
			fmt.Println(render.HighlightSQL(query.SQL, pilotApp.UI.IsDark()))
		}
		if askSQLOnly {
			return nil
		}

		if query.Results != nil {
			printResults(query.Results, askMaxRows)
		}
		if len(query.Chart) > 0 {
			fmt.Println("(chart payload available, view it in the web client)")
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askSQLOnly, "sql-only", false, "Print only the generated SQL")
	askCmd.Flags().IntVar(&askMaxRows, "max-rows", 50, "Maximum result rows to print (0 = all)")
	rootCmd.AddCommand(askCmd)
}

// printResults writes a result set as an aligned text table
func printResults(results *api.ResultSet, maxRows int) {
	if len(results.Columns) == 0 {
		fmt.Println("(no rows)")
		return
	}

	rows := results.Data
	truncated := 0
	if maxRows > 0 && len(rows) > maxRows {
		truncated = len(rows) - maxRows
		rows = rows[:maxRows]
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(results.Columns, "\t"))
	for _, cells := range rows {
		parts := make([]string, len(results.Columns))
		for i := range results.Columns {
			if i < len(cells) {
				parts[i] = cellText(cells[i])
			}
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
	}
	w.Flush()

	if truncated > 0 {
		fmt.Printf("%d rows (%d not shown)\n", results.RowCount, truncated)
	} else {
		fmt.Printf("%d rows\n", results.RowCount)
	}
}

// cellText renders one result cell for terminal output
func cellText(value any) string {
	if value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", value)
}
