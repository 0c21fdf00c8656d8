package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/planfold/planfold/internal/api"
	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/config"
	"github.com/planfold/planfold/internal/logger"
	"github.com/planfold/planfold/internal/model"
	"github.com/planfold/planfold/internal/views"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeHelp
)

// GroupBy selects the section grouping of the task list
type GroupBy int

const (
	GroupByBucket GroupBy = iota
	GroupByStatus
)

// Model is the main TUI model
type Model struct {
	client *api.Client
	cfg    *config.Config

	// The one key this screen renders; the cache is the source of
	// truth, the model only mirrors it for layout.
	listKey  cache.MyTasksQuery
	page     model.TaskPage
	sections []views.Section
	flat     []model.Task

	// Cache subscription
	changes     <-chan struct{}
	unsubscribe func()

	// UI state
	width      int
	height     int
	mode       Mode
	groupBy    GroupBy
	taskCursor int
	message    string

	// Input
	input textinput.Model
}

// NewModel creates a new TUI model
func NewModel(client *api.Client, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task..."
	ti.CharLimit = 256
	ti.Width = 50

	listKey := cache.MyTasksQuery{Page: 1, Size: cfg.PageSize, Sort: cfg.Sort}
	changes, unsubscribe := client.Cache().Subscribe(listKey)

	return Model{
		client:      client,
		cfg:         cfg,
		listKey:     listKey,
		changes:     changes,
		unsubscribe: unsubscribe,
		mode:        ModeNormal,
		groupBy:     GroupByBucket,
		input:       ti,
	}
}

// reload mirrors the cached page into the model's render state.
func (m *Model) reload() {
	if v, ok := m.client.Cache().Get(m.listKey); ok {
		if page, ok := v.(model.TaskPage); ok {
			m.page = page
		}
	}

	now := time.Now()
	if m.groupBy == GroupByStatus {
		m.sections = views.StatusSections(m.page.Items)
	} else {
		m.sections = views.BucketSections(m.page.Items, now)
	}

	m.flat = m.flat[:0]
	for _, s := range m.sections {
		m.flat = append(m.flat, s.Tasks...)
	}
	if m.taskCursor >= len(m.flat) {
		m.taskCursor = len(m.flat) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

// selected returns the task under the cursor, if any.
func (m *Model) selected() (model.Task, bool) {
	if m.taskCursor < 0 || m.taskCursor >= len(m.flat) {
		return model.Task{}, false
	}
	return m.flat[m.taskCursor], true
}
