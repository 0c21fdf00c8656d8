package api

import (
	"context"
	"net/http"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

// Team fetches a single team by ID and caches it.
func (c *Client) Team(ctx context.Context, id string) (model.Team, error) {
	var team model.Team
	if err := c.do(ctx, http.MethodGet, "/api/teams/"+id, nil, nil, &team); err != nil {
		return model.Team{}, err
	}
	c.cache.Set(cache.TeamQuery{ID: id}, team)
	return team, nil
}

// TeamProgress fetches a team's completion rollup and caches it.
func (c *Client) TeamProgress(ctx context.Context, teamID string) (model.TeamProgress, error) {
	var progress model.TeamProgress
	if err := c.do(ctx, http.MethodGet, "/api/teams/"+teamID+"/progress", nil, nil, &progress); err != nil {
		return model.TeamProgress{}, err
	}
	c.cache.Set(cache.TeamProgressQuery{TeamID: teamID}, progress)
	return progress, nil
}

// Goals fetches a team's goals and caches them.
func (c *Client) Goals(ctx context.Context, teamID string) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.do(ctx, http.MethodGet, "/api/teams/"+teamID+"/goals", nil, nil, &goals); err != nil {
		return nil, err
	}
	c.cache.Set(cache.GoalsQuery{TeamID: teamID}, goals)
	return goals, nil
}

// CreateGoal creates a goal and prepends it to the team's cached list.
func (c *Client) CreateGoal(ctx context.Context, draft model.GoalDraft) (model.Goal, error) {
	var created model.Goal
	if err := c.do(ctx, http.MethodPost, "/api/goals", nil, draft, &created); err != nil {
		return model.Goal{}, err
	}

	key := cache.GoalsQuery{TeamID: draft.TeamID}
	if v, ok := c.cache.Get(key); ok {
		if goals, ok := v.([]model.Goal); ok {
			next := make([]model.Goal, 0, len(goals)+1)
			next = append(next, created)
			next = append(next, goals...)
			c.cache.Set(key, next)
		}
	}
	return created, nil
}
