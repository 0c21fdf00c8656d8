package cli

import (
	"context"
	"fmt"

	"github.com/planfold/planfold/internal/gcal"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Calendar integration",
}

var calendarPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push your due-dated tasks to Google Calendar",
	Long: `Push your tasks to the configured Google calendar. Tasks without a
due date are skipped; tasks already pushed are updated in place.`,
	RunE: runCalendarPush,
}

func init() {
	calendarCmd.AddCommand(calendarPushCmd)
}

func runCalendarPush(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	if cfg.CredentialsFile == "" {
		return fmt.Errorf("credentials_file not set in config; download OAuth client credentials first")
	}

	ctx := context.Background()
	page, err := client.MyTasks(ctx, 1, cfg.PageSize, cfg.Sort)
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	cal, err := gcal.NewClient(ctx, cfg.CredentialsFile, cfg.CalendarID)
	if err != nil {
		return err
	}

	result, err := cal.Push(page.Items)
	if err != nil {
		return fmt.Errorf("calendar push failed: %w", err)
	}

	fmt.Printf("📅 Calendar push: %d created, %d updated, %d skipped\n",
		result.Created, result.Updated, result.Skipped)
	return nil
}
