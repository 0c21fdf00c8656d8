package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/planfold/planfold/internal/model"
	"github.com/planfold/planfold/internal/views"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	now := time.Now()
	summary := views.Summarize(m.page, now)
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Planfold · %d tasks, %d pending, %d overdue",
		summary.Total, summary.Pending, summary.Overdue)))
	b.WriteString("\n")

	if len(m.flat) == 0 {
		b.WriteString(MessageStyle.Render("\nNo tasks. Press 'a' to add one.\n"))
	}

	idx := 0
	for _, section := range m.sections {
		b.WriteString(SectionStyle.Render(fmt.Sprintf("%s (%d)", sectionTitle(section.Label), section.Count())))
		b.WriteString("\n")
		for _, t := range section.Tasks {
			b.WriteString(m.renderTask(t, idx == m.taskCursor, now))
			b.WriteString("\n")
			idx++
		}
	}

	if m.mode == ModeAddTask {
		modal := ModalStyle.Render("New task\n\n" + m.input.View())
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, modal)
	}
	if m.mode == ModeHelp {
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTask(t model.Task, selected bool, now time.Time) string {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("Jan 2")
		if t.IsOverdue(now) {
			due = ErrorStyle.Render(due)
		}
	}

	line := fmt.Sprintf("%s %-44s %-10s %s", icon, truncate(t.Title, 44), due, FormatPriority(t.Priority))

	switch {
	case selected:
		return TaskItemSelectedStyle.Render(line)
	case t.Completed:
		return TaskDoneStyle.Render(line)
	default:
		return TaskItemStyle.Render(line)
	}
}

func (m Model) renderStatusBar() string {
	left := HelpStyle.Render("j/k move · x toggle · a add · d delete · g group · R refresh · ? help · q quit")
	if m.message != "" {
		left = MessageStyle.Render(m.message)
	}
	return StatusBarStyle.Width(m.width - 2).Render(left)
}

func (m Model) renderHelp() string {
	rows := []string{
		"Planfold keys",
		"",
		"↑/k, ↓/j    move cursor",
		"x, space    toggle done",
		"a           add task",
		"d           delete task",
		"g           group by bucket/status",
		"R           refetch from server",
		"q           quit",
		"",
		"press any key to close",
	}
	return ModalStyle.Render(strings.Join(rows, "\n"))
}

func sectionTitle(label string) string {
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

// truncate shortens a string to max runes with ellipsis. Cutting on
// runes, not bytes, keeps multibyte titles valid.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
