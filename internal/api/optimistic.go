package api

import (
	"context"
	"net/http"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/logger"
	"github.com/planfold/planfold/internal/model"
)

// statusFlight tracks one task's in-flight status change. The snapshot is
// taken once, when the first change of a burst starts, so a revert lands
// on the state before the user began toggling.
type statusFlight struct {
	seq      int
	cancel   context.CancelFunc
	snapshot cache.Snapshot
}

// SetTaskStatusOptimistic applies the status to the cache before the
// network call resolves. Status toggles happen on every click and the
// product accepts no loading affordance there.
//
// A second call for the same task while the first is in flight cancels
// and supersedes it: only the latest status is sent and displayed, and a
// superseded call settles without error. If the surviving call fails, the
// snapshot is restored and the error returned to the caller.
func (c *Client) SetTaskStatusOptimistic(ctx context.Context, id, status string) error {
	c.inflightMu.Lock()
	fl := c.inflight[id]
	if fl == nil {
		fl = &statusFlight{snapshot: c.cache.SnapshotMatching(cache.TaskRelated(id))}
		c.inflight[id] = fl
	} else if fl.cancel != nil {
		logger.Debug("Superseding in-flight status change", logger.F("task", id))
		fl.cancel()
	}
	fl.seq++
	seq := fl.seq
	callCtx, cancel := context.WithCancel(ctx)
	fl.cancel = cancel
	c.inflightMu.Unlock()
	defer cancel()

	// Local apply, synchronously, before any network wait.
	c.applyStatusLocally(id, status)

	err := c.do(callCtx, http.MethodPatch, "/api/tasks/"+id, nil, model.StatusPatch(status), nil)

	c.inflightMu.Lock()
	defer c.inflightMu.Unlock()
	if fl.seq != seq {
		// A newer change for this task owns the outcome now.
		return nil
	}
	delete(c.inflight, id)
	if err != nil {
		c.cache.Restore(fl.snapshot)
		return err
	}
	return nil
}

func (c *Client) applyStatusLocally(id, status string) {
	c.cache.PatchMatching(cache.TaskRelated(id), func(k cache.Key, v any) (any, bool) {
		switch val := v.(type) {
		case model.TaskPage:
			for i, t := range val.Items {
				if t.ID == id {
					items := make([]model.Task, len(val.Items))
					copy(items, val.Items)
					items[i].SetStatus(status)
					return model.TaskPage{Items: items, Total: val.Total}, true
				}
			}
		case model.Task:
			if val.ID == id {
				val.SetStatus(status)
				return val, true
			}
		}
		return v, false
	})
}
