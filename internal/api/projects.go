package api

import (
	"context"
	"net/http"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

// Projects fetches one page of the project list and caches it.
func (c *Client) Projects(ctx context.Context, page, size int) (model.ProjectPage, error) {
	var result model.ProjectPage
	if err := c.do(ctx, http.MethodGet, "/api/projects", pageQuery(page, size, ""), nil, &result); err != nil {
		return model.ProjectPage{}, err
	}
	c.cache.Set(cache.ProjectsQuery{Page: page, Size: size}, result)
	return result, nil
}

// Project fetches a single project by ID and caches it.
func (c *Client) Project(ctx context.Context, id string) (model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, nil, &project); err != nil {
		return model.Project{}, err
	}
	c.cache.Set(cache.ProjectQuery{ID: id}, project)
	return project, nil
}

// CreateProject creates a project and prepends it to cached project lists.
func (c *Client) CreateProject(ctx context.Context, draft model.ProjectDraft) (model.Project, error) {
	var created model.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, draft, &created); err != nil {
		return model.Project{}, err
	}

	c.cache.PatchMatching(cache.IsProjectCollection, func(k cache.Key, v any) (any, bool) {
		page, ok := v.(model.ProjectPage)
		if !ok {
			return v, false
		}
		items := make([]model.Project, 0, len(page.Items)+1)
		items = append(items, created)
		items = append(items, page.Items...)
		return model.ProjectPage{Items: items, Total: page.Total + 1}, true
	})
	return created, nil
}

// UpdateProject applies a partial patch and swaps the result into every
// cached project entry that embeds it.
func (c *Client) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	var updated model.Project
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+id, nil, patch, &updated); err != nil {
		return model.Project{}, err
	}

	c.cache.PatchMatching(cache.ProjectRelated(id), func(k cache.Key, v any) (any, bool) {
		switch val := v.(type) {
		case model.ProjectPage:
			for i, p := range val.Items {
				if p.ID == id {
					items := make([]model.Project, len(val.Items))
					copy(items, val.Items)
					items[i] = updated
					return model.ProjectPage{Items: items, Total: val.Total}, true
				}
			}
		case model.Project:
			return updated, true
		}
		return v, false
	})
	return updated, nil
}

// DeleteProject deletes a project, drops it from cached lists and evicts
// its single-item entry.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil, nil); err != nil {
		return err
	}

	c.cache.PatchMatching(cache.IsProjectCollection, func(k cache.Key, v any) (any, bool) {
		page, ok := v.(model.ProjectPage)
		if !ok {
			return v, false
		}
		items := make([]model.Project, 0, len(page.Items))
		removed := false
		for _, p := range page.Items {
			if p.ID == id {
				removed = true
				continue
			}
			items = append(items, p)
		}
		if !removed {
			return v, false
		}
		total := page.Total - 1
		if total < 0 {
			total = 0
		}
		return model.ProjectPage{Items: items, Total: total}, true
	})
	c.cache.Delete(cache.ProjectQuery{ID: id})
	return nil
}

// Notes fetches a project's notes and caches them.
func (c *Client) Notes(ctx context.Context, projectID string) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/notes", nil, nil, &notes); err != nil {
		return nil, err
	}
	c.cache.Set(cache.NotesQuery{ProjectID: projectID}, notes)
	return notes, nil
}

// CreateNote creates a note and prepends it to the project's cached list.
func (c *Client) CreateNote(ctx context.Context, draft model.NoteDraft) (model.Note, error) {
	var created model.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", nil, draft, &created); err != nil {
		return model.Note{}, err
	}

	key := cache.NotesQuery{ProjectID: draft.ProjectID}
	if v, ok := c.cache.Get(key); ok {
		if notes, ok := v.([]model.Note); ok {
			next := make([]model.Note, 0, len(notes)+1)
			next = append(next, created)
			next = append(next, notes...)
			c.cache.Set(key, next)
		}
	}
	return created, nil
}
