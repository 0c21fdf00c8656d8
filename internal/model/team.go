package model

import "time"

// Team is the coarsest aggregate; projects and goals hang off it.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []UserRef `json:"members,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamProgress is the per-team completion rollup the dashboard renders.
type TeamProgress struct {
	TeamID         string  `json:"team_id"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	Percent        float64 `json:"percent"`
}

// Goal is a team-level objective.
type Goal struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Title     string    `json:"title"`
	DueDate   *Date     `json:"due_date,omitempty"`
	Progress  float64   `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalDraft is the payload for creating a goal.
type GoalDraft struct {
	TeamID  string `json:"team_id"`
	Title   string `json:"title"`
	DueDate *Date  `json:"due_date,omitempty"`
}

// Note is a free-form note attached to a project.
type Note struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteDraft is the payload for creating a note.
type NoteDraft struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
}
