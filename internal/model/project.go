package model

import "time"

// Project represents a collection of tasks
type Project struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectPage is a paged project collection.
type ProjectPage struct {
	Items []Project `json:"items"`
	Total int       `json:"total"`
}

// ProjectDraft is the payload for creating a project.
type ProjectDraft struct {
	TeamID      string `json:"team_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ProjectPatch is a partial project update.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}

// Apply copies the patch onto the project.
func (p ProjectPatch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Color != nil {
		pr.Color = *p.Color
	}
	if p.Archived != nil {
		pr.Archived = *p.Archived
	}
	pr.UpdatedAt = time.Now()
}
