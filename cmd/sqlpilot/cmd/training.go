package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
)

var (
	trainType     string
	trainQuestion string
	trainContent  string
	trainFile     string
)

var trainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Inspect and curate assistant training data",
}

var trainingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List training data entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := pilotApp.Training.Fetch(context.Background()); err != nil {
			return err
		}

		items := pilotApp.Training.Items()
		if len(items) == 0 {
			fmt.Println("No training data")
			return nil
		}

		for _, item := range items {
			line := fmt.Sprintf("%s  %-14s", item.ID, item.Type)
			if item.Question != "" {
				line += "  " + item.Question
			}
			fmt.Println(line)
		}
		fmt.Printf("%d entries\n", pilotApp.Training.Count())
		return nil
	},
}

var trainingAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a training entry (sql, ddl, or documentation)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		content := trainContent
		if trainFile != "" {
			data, err := os.ReadFile(trainFile)
			if err != nil {
				return fmt.Errorf("failed to read content file: %w", err)
			}
			content = string(data)
		}
		if content == "" {
			return fmt.Errorf("content is required: pass --content or --file")
		}

		var request api.TrainRequest
		switch trainType {
		case "sql":
			if trainQuestion == "" {
				return fmt.Errorf("sql training pairs need --question")
			}
			request = api.TrainRequest{Question: trainQuestion, SQL: content}
		case "ddl":
			request = api.TrainRequest{DDL: content}
		case "documentation", "doc":
			request = api.TrainRequest{Documentation: content}
		default:
			return fmt.Errorf("unknown training type %q (want sql, ddl, or documentation)", trainType)
		}

		if err := pilotApp.Training.Add(context.Background(), request); err != nil {
			return err
		}
		fmt.Printf("Added, %d entries total\n", pilotApp.Training.Count())
		return nil
	},
}

var trainingRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a training entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		if err := pilotApp.Training.Remove(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed, %d entries remain\n", pilotApp.Training.Count())
		return nil
	},
}

func init() {
	trainingAddCmd.Flags().StringVarP(&trainType, "type", "t", "sql", "Entry type (sql, ddl, documentation)")
	trainingAddCmd.Flags().StringVarP(&trainQuestion, "question", "q", "", "Question paired with SQL content")
	trainingAddCmd.Flags().StringVarP(&trainContent, "content", "c", "", "Entry content")
	trainingAddCmd.Flags().StringVarP(&trainFile, "file", "f", "", "Read entry content from a file")

	trainingCmd.AddCommand(trainingListCmd)
	trainingCmd.AddCommand(trainingAddCmd)
	trainingCmd.AddCommand(trainingRemoveCmd)
	rootCmd.AddCommand(trainingCmd)
}
