// Package gcal pushes due-dated tasks to a Google calendar. Events are
// keyed by a private extended property so repeated pushes patch instead
// of duplicating.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/planfold/planfold/internal/logger"
	"github.com/planfold/planfold/internal/model"
)

const taskIDProperty = "planfold_task_id"

// Client wraps the Calendar API for task pushes.
type Client struct {
	srv        *calendar.Service
	calendarID string
}

// NewClient builds an authenticated calendar client. credentialsFile is
// the downloaded OAuth client JSON; the user token is cached at
// ~/.planfold/gcal-token.json and refreshed automatically.
func NewClient(ctx context.Context, credentialsFile, calendarID string) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsFile, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	token, err := loadToken()
	if err != nil {
		token, err = tokenFromPrompt(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(token); err != nil {
			logger.Warn("Failed to cache calendar token", logger.F("error", err))
		}
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	return &Client{srv: srv, calendarID: calendarID}, nil
}

// PushResult counts what a push did.
type PushResult struct {
	Created int
	Updated int
	Skipped int
}

// Push syncs the given tasks to the calendar. Tasks without a due date
// are skipped; existing events are patched only when a field differs.
func (c *Client) Push(tasks []model.Task) (PushResult, error) {
	var result PushResult
	for _, t := range tasks {
		if t.DueDate == nil {
			result.Skipped++
			continue
		}

		target := eventForTask(t)
		existing, err := c.findEvent(t.ID)
		if err != nil {
			return result, err
		}

		if existing == nil {
			if _, err := c.srv.Events.Insert(c.calendarID, target).Do(); err != nil {
				return result, fmt.Errorf("failed to insert event for task %s: %w", t.ID, err)
			}
			result.Created++
			continue
		}

		patch := eventDiff(existing, target)
		if patch == nil {
			result.Skipped++
			continue
		}
		if _, err := c.srv.Events.Patch(c.calendarID, existing.Id, patch).Do(); err != nil {
			return result, fmt.Errorf("failed to patch event for task %s: %w", t.ID, err)
		}
		result.Updated++
	}
	return result, nil
}

// findEvent locates the event carrying the task's ID, if any.
func (c *Client) findEvent(taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, taskID)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search calendar: %w", err)
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

func eventForTask(t model.Task) *calendar.Event {
	summary := t.Title
	if t.Completed {
		summary = "✓ " + summary
	}

	day := t.DueDate.Format("2006-01-02")
	return &calendar.Event{
		Summary:     summary,
		Description: t.Description,
		Start:       &calendar.EventDateTime{Date: day},
		End:         &calendar.EventDateTime{Date: day},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{taskIDProperty: t.ID},
		},
	}
}

// eventDiff returns a patch containing only the fields that changed, or
// nil when nothing did.
func eventDiff(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	changed := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		changed = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		changed = true
	}
	if existing.Start == nil || existing.Start.Date != target.Start.Date {
		patch.Start = target.Start
		patch.End = target.End
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".planfold", "gcal-token.json"), nil
}

func loadToken() (*oauth2.Token, error) {
	path, err := tokenPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(token *oauth2.Token) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// tokenFromPrompt runs the manual authorization flow: the user opens the
// URL, grants access and pastes the code back.
func tokenFromPrompt(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser, then paste the code here:\n%s\n\nCode: ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	token, err := config.Exchange(exchangeCtx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}
