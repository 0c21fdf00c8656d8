package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/planfold/planfold/internal/model"
	"github.com/planfold/planfold/internal/views"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your tasks",
	Long: `List your tasks, grouped by action-time bucket or by status.

Examples:
  planfold list
  planfold list --by status
  planfold list --project 8f2c1a
  planfold list --page 2`,
	RunE: runList,
}

var (
	listProject string
	listBy      string
	listPage    int
)

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "List a project's tasks instead of your own")
	listCmd.Flags().StringVar(&listBy, "by", "bucket", "Grouping: bucket or status")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch")
}

func runList(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var page model.TaskPage
	if listProject != "" {
		page, err = client.ProjectTasks(ctx, listProject, listPage, cfg.PageSize, cfg.Sort)
	} else {
		page, err = client.MyTasks(ctx, listPage, cfg.PageSize, cfg.Sort)
	}
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No tasks found. Add one with: planfold add \"Your task\"")
		return nil
	}

	now := time.Now()
	summary := views.Summarize(page, now)
	fmt.Printf("\n%d tasks (%d pending, %d done, %d overdue)\n",
		summary.Total, summary.Pending, summary.Completed, summary.Overdue)

	var sections []views.Section
	if listBy == "status" {
		sections = views.StatusSections(page.Items)
	} else {
		sections = views.BucketSections(page.Items, now)
	}

	for _, section := range sections {
		fmt.Printf("\n%s (%d)\n", sectionLabel(section.Label), section.Count())
		fmt.Println(strings.Repeat("─", 60))
		for _, t := range section.Tasks {
			printTask(t, now)
		}
	}
	fmt.Println()
	return nil
}

func sectionLabel(label string) string {
	switch label {
	case model.BucketRecentlyAssigned:
		return "Recently assigned"
	case model.BucketDoToday:
		return "Do today"
	case model.BucketDoNextWeek:
		return "Do next week"
	case model.BucketDoLater:
		return "Do later"
	case model.GroupTodo:
		return "To do"
	case model.GroupInProgress:
		return "In progress"
	case model.GroupCompleted:
		return "Completed"
	case model.GroupOther:
		return "Other"
	}
	return label
}

// truncateTitle shortens a title to max runes with ellipsis, never
// splitting a multibyte rune.
func truncateTitle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func printTask(t model.Task, now time.Time) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	priority := ""
	switch t.Priority {
	case model.PriorityUrgent:
		priority = "▲ P1"
	case model.PriorityHigh:
		priority = "▲ P2"
	case model.PriorityMedium:
		priority = "  P3"
	case model.PriorityLow:
		priority = "  P4"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue(now) {
			due += "!"
		}
	}

	title := truncateTitle(t.Title, 40)

	shortID := t.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	fmt.Printf("  %s  %-8s  %-40s  %-10s  %s\n", icon, shortID, title, due, priority)
}
