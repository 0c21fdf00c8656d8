package cli

import (
	"context"
	"fmt"

	"github.com/planfold/planfold/internal/model"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as completed.

Examples:
  planfold done abc123
  planfold done abc123 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not done")
}

func runDone(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	status := model.StatusDone
	if doneUndo {
		status = model.StatusTodo
	}

	task, err := client.SetTaskStatus(context.Background(), args[0], status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if task.Completed {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Title)
	} else {
		fmt.Printf("○ Reopened: \"%s\"\n", task.Title)
	}
	return nil
}
