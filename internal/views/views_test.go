package views

import (
	"testing"
	"time"

	"github.com/planfold/planfold/internal/model"
)

var monday = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)

func TestStatusSections(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Status: model.StatusTodo},
		{ID: "b", Status: model.StatusDone, Completed: true},
		{ID: "c", Status: model.StatusTodo},
		{ID: "d", Status: model.StatusBlocked},
	}

	sections := StatusSections(tasks)

	wantLabels := []string{model.GroupTodo, model.GroupCompleted, model.GroupOther}
	if len(sections) != len(wantLabels) {
		t.Fatalf("got %d sections, want %d", len(sections), len(wantLabels))
	}
	for i, label := range wantLabels {
		if sections[i].Label != label {
			t.Errorf("section %d = %q, want %q", i, sections[i].Label, label)
		}
	}
	if sections[0].Count() != 2 {
		t.Errorf("todo count = %d, want 2", sections[0].Count())
	}
	// in_progress is empty and must be omitted entirely.
	for _, s := range sections {
		if s.Label == model.GroupInProgress {
			t.Error("empty section should be omitted")
		}
	}
}

func TestBucketSections(t *testing.T) {
	tasks := []model.Task{
		{ID: "today", DueDate: model.NewDate(2024, time.June, 10)},
		{ID: "next", DueDate: model.NewDate(2024, time.June, 18)},
		{ID: "fresh", CreatedAt: monday},
		{ID: "pinned", DueDate: model.NewDate(2024, time.June, 10), ActionTime: model.BucketDoLater},
	}

	sections := BucketSections(tasks, monday)

	byLabel := make(map[string][]model.Task)
	for _, s := range sections {
		byLabel[s.Label] = s.Tasks
	}

	if got := byLabel[model.BucketDoToday]; len(got) != 1 || got[0].ID != "today" {
		t.Errorf("do-today = %+v", got)
	}
	if got := byLabel[model.BucketDoNextWeek]; len(got) != 1 || got[0].ID != "next" {
		t.Errorf("do-next-week = %+v", got)
	}
	if got := byLabel[model.BucketRecentlyAssigned]; len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("recently-assigned = %+v", got)
	}
	// Manual override wins even though the due date says today.
	if got := byLabel[model.BucketDoLater]; len(got) != 1 || got[0].ID != "pinned" {
		t.Errorf("do-later = %+v", got)
	}

	// Fixed ordering: recently-assigned before do-today.
	if sections[0].Label != model.BucketRecentlyAssigned {
		t.Errorf("first section = %q", sections[0].Label)
	}
}

func TestSummarize(t *testing.T) {
	page := model.TaskPage{
		Items: []model.Task{
			{ID: "a", Status: model.StatusTodo, DueDate: model.NewDate(2024, time.June, 3)},
			{ID: "b", Status: model.StatusDone, Completed: true, DueDate: model.NewDate(2024, time.June, 1)},
			{ID: "c", Status: model.StatusInProgress},
		},
		Total: 12,
	}

	s := Summarize(page, monday)

	if s.Total != 12 {
		t.Errorf("Total = %d, want server-reported 12", s.Total)
	}
	if s.Pending != 2 || s.Completed != 1 {
		t.Errorf("pending/completed = %d/%d, want 2/1", s.Pending, s.Completed)
	}
	// The completed task is past due but completed tasks are never overdue.
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
}
