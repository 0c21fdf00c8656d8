package api

import (
	"context"
	"net/http"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

// MyTasks fetches one page of the caller's task summary and caches it.
func (c *Client) MyTasks(ctx context.Context, page, size int, sort string) (model.TaskPage, error) {
	var result model.TaskPage
	if err := c.do(ctx, http.MethodGet, "/api/tasks/my-tasks", pageQuery(page, size, sort), nil, &result); err != nil {
		return model.TaskPage{}, err
	}
	c.cache.Set(cache.MyTasksQuery{Page: page, Size: size, Sort: sort}, result)
	return result, nil
}

// ProjectTasks fetches one page of a project's task list and caches it.
func (c *Client) ProjectTasks(ctx context.Context, projectID string, page, size int, sort string) (model.TaskPage, error) {
	var result model.TaskPage
	path := "/api/projects/" + projectID + "/tasks"
	if err := c.do(ctx, http.MethodGet, path, pageQuery(page, size, sort), nil, &result); err != nil {
		return model.TaskPage{}, err
	}
	c.cache.Set(cache.ProjectTasksQuery{ProjectID: projectID, Page: page, Size: size, Sort: sort}, result)
	return result, nil
}

// Task fetches a single task by ID and caches it.
func (c *Client) Task(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, nil, &task); err != nil {
		return model.Task{}, err
	}
	c.cache.Set(cache.TaskQuery{ID: id}, task)
	return task, nil
}

// CreateTask creates a task, then prepends it to the cached collections
// that can contain it (my-tasks pages and its own project's lists) and
// bumps their totals. Other projects' lists are never touched. No
// revalidation: refetching here makes lists visibly flicker and reorder
// under the user.
func (c *Client) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", nil, draft, &created); err != nil {
		return model.Task{}, err
	}

	c.cache.PatchMatching(cache.TaskCollectionsFor(created.ProjectID), func(k cache.Key, v any) (any, bool) {
		page, ok := v.(model.TaskPage)
		if !ok {
			return v, false
		}
		items := make([]model.Task, 0, len(page.Items)+1)
		items = append(items, created)
		items = append(items, page.Items...)
		return model.TaskPage{Items: items, Total: page.Total + 1}, true
	})
	return created, nil
}

// UpdateTask applies a partial patch, then replaces the task by ID inside
// every cached collection and its single-item entry. Entries that do not
// embed the task are left untouched; the cache is unmodified on failure.
func (c *Client) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	var updated model.Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, nil, patch, &updated); err != nil {
		return model.Task{}, err
	}
	c.replaceTaskEverywhere(updated)
	return updated, nil
}

// DeleteTask deletes a task, removes it from every cached collection
// (totals floored at zero) and evicts its single-item entry.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, nil); err != nil {
		return err
	}

	c.cache.PatchMatching(cache.IsTaskCollection, func(k cache.Key, v any) (any, bool) {
		page, ok := v.(model.TaskPage)
		if !ok {
			return v, false
		}
		items := make([]model.Task, 0, len(page.Items))
		removed := false
		for _, t := range page.Items {
			if t.ID == id {
				removed = true
				continue
			}
			items = append(items, t)
		}
		if !removed {
			return v, false
		}
		total := page.Total - 1
		if total < 0 {
			total = 0
		}
		return model.TaskPage{Items: items, Total: total}, true
	})
	c.cache.Delete(cache.TaskQuery{ID: id})
	return nil
}

// SetTaskStatus changes a task's status without the optimistic path.
// Status and the completed flag travel together.
func (c *Client) SetTaskStatus(ctx context.Context, id, status string) (model.Task, error) {
	return c.UpdateTask(ctx, id, model.StatusPatch(status))
}

// replaceTaskEverywhere swaps the updated task into each cache entry that
// embeds it.
func (c *Client) replaceTaskEverywhere(updated model.Task) {
	c.cache.PatchMatching(cache.TaskRelated(updated.ID), func(k cache.Key, v any) (any, bool) {
		switch val := v.(type) {
		case model.TaskPage:
			return replaceInPage(val, updated)
		case model.Task:
			return updated, true
		}
		return v, false
	})
}

func replaceInPage(page model.TaskPage, updated model.Task) (model.TaskPage, bool) {
	for i, t := range page.Items {
		if t.ID == updated.ID {
			items := make([]model.Task, len(page.Items))
			copy(items, page.Items)
			items[i] = updated
			return model.TaskPage{Items: items, Total: page.Total}, true
		}
	}
	return page, false
}
