package model

import "time"

// Priority levels for tasks
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses as reported by the backend
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusTesting    = "testing"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// Status groups used by list views
const (
	GroupTodo       = "todo"
	GroupInProgress = "in_progress"
	GroupCompleted  = "completed"
	GroupOther      = "other"
)

// ActionTime buckets a user can pin on a task. An empty value means
// "follow the computed suggestion".
const (
	BucketRecentlyAssigned = "recently-assigned"
	BucketDoToday          = "do-today"
	BucketDoNextWeek       = "do-next-week"
	BucketDoLater          = "do-later"
)

// UserRef is an opaque reference to a user, as embedded in task assignees.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Task represents a single task item
type Task struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority,omitempty"`
	DueDate     *Date     `json:"due_date,omitempty"`
	StartDate   *Date     `json:"start_date,omitempty"`
	EndDate     *Date     `json:"end_date,omitempty"`
	ActionTime  string    `json:"action_time,omitempty"`
	Assignees   []UserRef `json:"assignees,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPage is a paged task collection with its server-reported total.
type TaskPage struct {
	Items []Task `json:"items"`
	Total int    `json:"total"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	ProjectID   string    `json:"project_id,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	DueDate     *Date     `json:"due_date,omitempty"`
	Assignees   []UserRef `json:"assignees,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched by the backend.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *Date   `json:"due_date,omitempty"`
	ActionTime  *string `json:"action_time,omitempty"`
}

// SetStatus sets status and the completed flag together. Call sites must
// never set one without the other or list views disagree about done-ness.
func (t *Task) SetStatus(status string) {
	t.Status = status
	t.Completed = status == StatusDone
}

// StatusPatch builds a patch that keeps status and completed in agreement.
func StatusPatch(status string) TaskPatch {
	completed := status == StatusDone
	return TaskPatch{Status: &status, Completed: &completed}
}

// Apply copies the patch onto the task and refreshes UpdatedAt.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.SetStatus(*p.Status)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.ActionTime != nil {
		t.ActionTime = *p.ActionTime
	}
	t.UpdatedAt = time.Now()
}

// StatusGroup maps a backend status to the coarse group list views render.
func StatusGroup(status string) string {
	switch status {
	case StatusTodo:
		return GroupTodo
	case StatusInProgress:
		return GroupInProgress
	case StatusDone:
		return GroupCompleted
	default:
		return GroupOther
	}
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Time.Before(today)
}
