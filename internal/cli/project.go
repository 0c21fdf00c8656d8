package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/planfold/planfold/internal/model"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectAdd,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm [project-id]",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRm,
}

var projectColor string

func init() {
	projectAddCmd.Flags().StringVar(&projectColor, "color", "", "Display color, e.g. #4ECDC4")
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectRmCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	page, err := client.Projects(context.Background(), 1, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(page.Items) == 0 {
		fmt.Println("No projects yet. Create one with: planfold project add \"Name\"")
		return nil
	}

	fmt.Printf("\n%d projects\n", page.Total)
	fmt.Println(strings.Repeat("─", 40))
	for _, p := range page.Items {
		marker := " "
		if p.Archived {
			marker = "archived"
		}
		fmt.Printf("  %-8s  %-24s  %s\n", shortID(p.ID), p.Name, marker)
	}
	fmt.Println()
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	created, err := client.CreateProject(context.Background(), model.ProjectDraft{
		Name:  strings.Join(args, " "),
		Color: projectColor,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project \"%s\" (%s)\n", created.Name, shortID(created.ID))
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteProject(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("✗ Deleted project %s\n", args[0])
	return nil
}
