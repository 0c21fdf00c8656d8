package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/planfold/planfold/internal/logger"
	"github.com/planfold/planfold/internal/model"
)

// Messages
type (
	tasksLoadedMsg  struct{}
	cacheChangedMsg struct{}
	mutationDoneMsg struct{ info string }
	errMsg          struct{ err error }
)

// Init starts the initial fetch and the cache watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchTasks(), m.waitForChange())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.reload()
		return m, nil

	case cacheChangedMsg:
		// A mutation (from any path) patched our key; re-render and
		// keep watching.
		m.reload()
		return m, m.waitForChange()

	case mutationDoneMsg:
		m.message = msg.info
		m.reload()
		return m, nil

	case errMsg:
		logger.Warn("TUI operation failed", logger.F("error", msg.err))
		m.message = msg.err.Error()
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeAddTask {
			return m.updateAddTask(msg)
		}
		if m.mode == ModeHelp {
			m.mode = ModeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.unsubscribe()
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(m.flat)-1 {
			m.taskCursor++
		}

	case key.Matches(msg, keys.Done):
		if task, ok := m.selected(); ok {
			return m, m.toggleDone(task)
		}

	case key.Matches(msg, keys.Delete):
		if task, ok := m.selected(); ok {
			return m, m.deleteTask(task)
		}

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Group):
		if m.groupBy == GroupByBucket {
			m.groupBy = GroupByStatus
		} else {
			m.groupBy = GroupByBucket
		}
		m.reload()

	case key.Matches(msg, keys.Refresh):
		return m, m.fetchTasks()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) updateAddTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		title := strings.TrimSpace(m.input.Value())
		m.mode = ModeNormal
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		return m, m.createTask(title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Commands

func (m Model) fetchTasks() tea.Cmd {
	client, k := m.client, m.listKey
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := client.MyTasks(ctx, k.Page, k.Size, k.Sort); err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{}
	}
}

// waitForChange blocks on the cache subscription until the entry is
// written again.
func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return cacheChangedMsg{}
	}
}

// toggleDone flips the task through the optimistic path: the cache is
// patched before the command even runs the network call, and the watcher
// repaints from the patched entry. On failure the cache reverts and the
// watcher repaints again.
func (m Model) toggleDone(task model.Task) tea.Cmd {
	client := m.client
	status := model.StatusDone
	if task.Completed {
		status = model.StatusTodo
	}
	return func() tea.Msg {
		if err := client.SetTaskStatusOptimistic(context.Background(), task.ID, status); err != nil {
			return errMsg{err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) deleteTask(task model.Task) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), task.ID); err != nil {
			return errMsg{err}
		}
		return mutationDoneMsg{info: "Deleted \"" + truncate(task.Title, 30) + "\""}
	}
}

func (m Model) createTask(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.CreateTask(context.Background(), model.TaskDraft{Title: title})
		if err != nil {
			return errMsg{err}
		}
		return mutationDoneMsg{info: "Added \"" + truncate(title, 30) + "\""}
	}
}
