package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/planfold/planfold/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Create a task.

Examples:
  planfold add "Write the launch notes"
  planfold add "Fix login redirect" --project 8f2c1a --due 2026-09-15 --priority high`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addProject  string
	addDue      string
	addPriority string
)

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project to add the task to")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "Priority: low, medium, high, urgent")
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	draft := model.TaskDraft{
		Title:     strings.Join(args, " "),
		ProjectID: addProject,
		Priority:  addPriority,
	}

	if addDue != "" {
		due, err := time.ParseInLocation("2006-01-02", addDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", addDue)
		}
		draft.DueDate = model.DateOf(due)
	}

	created, err := client.CreateTask(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Added: \"%s\" (%s)\n", created.Title, shortID(created.ID))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
