package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/planfold/planfold/internal/cache"
	"github.com/planfold/planfold/internal/model"
)

func seedTask(store *cache.Store, status string) cache.Key {
	key := cache.MyTasksQuery{Page: 1, Size: 20}
	task := model.Task{ID: "t1", Title: "task", Status: status, Completed: status == model.StatusDone}
	store.Set(key, model.TaskPage{Items: []model.Task{task}, Total: 1})
	store.Set(cache.TaskQuery{ID: "t1"}, task)
	return key
}

func listStatus(t *testing.T, store *cache.Store, k cache.Key) string {
	t.Helper()
	page := cachedPage(t, store, k)
	if len(page.Items) == 0 {
		t.Fatal("seeded page is empty")
	}
	return page.Items[0].Status
}

func TestOptimisticAppliesBeforeResponse(t *testing.T) {
	release := make(chan struct{})
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("{}"))
	})
	key := seedTask(store, model.StatusTodo)

	done := make(chan error, 1)
	go func() {
		done <- client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusDone)
	}()

	// The cache must reflect the new status while the request is still
	// hanging.
	deadline := time.After(2 * time.Second)
	for listStatus(t, store, key) != model.StatusDone {
		select {
		case <-deadline:
			t.Fatal("status never applied locally")
		case <-time.After(5 * time.Millisecond):
		}
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("surviving call failed: %v", err)
	}
	if got := listStatus(t, store, key); got != model.StatusDone {
		t.Errorf("status after success = %q", got)
	}
	v, _ := store.Get(cache.TaskQuery{ID: "t1"})
	if task := v.(model.Task); !task.Completed {
		t.Error("single-item entry should be done and completed")
	}
}

func TestOptimisticRevertsOnFailure(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "stale"}`, http.StatusConflict)
	})
	key := seedTask(store, model.StatusTodo)

	err := client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusDone)

	var be *BackendError
	if !errors.As(err, &be) || be.Status != http.StatusConflict {
		t.Fatalf("err = %v, want 409 backend error", err)
	}
	if got := listStatus(t, store, key); got != model.StatusTodo {
		t.Errorf("status after revert = %q, want todo", got)
	}
	v, _ := store.Get(cache.TaskQuery{ID: "t1"})
	if task := v.(model.Task); task.Status != model.StatusTodo || task.Completed {
		t.Errorf("single-item entry after revert = %+v", task)
	}
}

func TestOptimisticSupersede(t *testing.T) {
	firstArrived := make(chan struct{})
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)
		switch patch["status"] {
		case "in_progress":
			close(firstArrived)
			// Hold the first request open until the client cancels it.
			<-r.Context().Done()
		case "done":
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected status %v", patch["status"])
		}
	})
	key := seedTask(store, model.StatusTodo)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusInProgress)
	}()
	<-firstArrived

	if err := client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusDone); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	select {
	case err := <-firstDone:
		if err != nil {
			t.Errorf("superseded call should settle without error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded call never returned")
	}

	if got := listStatus(t, store, key); got != model.StatusDone {
		t.Errorf("status after burst = %q, want done", got)
	}
}

func TestSupersededBurstFailureRevertsToStart(t *testing.T) {
	firstArrived := make(chan struct{})
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)
		switch patch["status"] {
		case "in_progress":
			close(firstArrived)
			<-r.Context().Done()
		default:
			http.Error(w, `{"message": "rejected"}`, http.StatusUnprocessableEntity)
		}
	})
	key := seedTask(store, model.StatusTodo)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusInProgress)
	}()
	<-firstArrived

	err := client.SetTaskStatusOptimistic(context.Background(), "t1", model.StatusBlocked)
	var be *BackendError
	if !errors.As(err, &be) || be.Status != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422 backend error", err)
	}
	<-firstDone

	// The revert lands on the state before the burst began, not on the
	// first speculative value.
	if got := listStatus(t, store, key); got != model.StatusTodo {
		t.Errorf("status after failed burst = %q, want todo", got)
	}
}
