// Package views shapes cached collections into the section lists the
// CLI and TUI render. Views never hold private copies of fetched data
// across renders; they are read-only projections over the cache.
package views

import (
	"time"

	"github.com/planfold/planfold/internal/bucket"
	"github.com/planfold/planfold/internal/model"
)

// Section is one rendered group of tasks with its heading and count.
type Section struct {
	Label string
	Tasks []model.Task
}

// Count returns how many tasks the section holds.
func (s Section) Count() int {
	return len(s.Tasks)
}

var statusOrder = []string{
	model.GroupTodo,
	model.GroupInProgress,
	model.GroupCompleted,
	model.GroupOther,
}

var bucketOrder = []string{
	model.BucketRecentlyAssigned,
	model.BucketDoToday,
	model.BucketDoNextWeek,
	model.BucketDoLater,
}

// StatusSections groups tasks by coarse status group, in fixed order.
// Empty sections are omitted.
func StatusSections(tasks []model.Task) []Section {
	grouped := make(map[string][]model.Task)
	for _, t := range tasks {
		g := model.StatusGroup(t.Status)
		grouped[g] = append(grouped[g], t)
	}
	return ordered(grouped, statusOrder)
}

// BucketSections groups tasks by effective action-time bucket as of
// today, honoring manual overrides. Empty sections are omitted.
func BucketSections(tasks []model.Task, today time.Time) []Section {
	grouped := make(map[string][]model.Task)
	for _, t := range tasks {
		b, _ := bucket.Resolve(t, today)
		grouped[b] = append(grouped[b], t)
	}
	return ordered(grouped, bucketOrder)
}

// Summary holds the counts list headers show.
type Summary struct {
	Total     int
	Pending   int
	Completed int
	Overdue   int
}

// Summarize computes header counts for a task page.
func Summarize(page model.TaskPage, now time.Time) Summary {
	s := Summary{Total: page.Total}
	for _, t := range page.Items {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	return s
}

func ordered(grouped map[string][]model.Task, order []string) []Section {
	sections := make([]Section, 0, len(order))
	for _, label := range order {
		if tasks, ok := grouped[label]; ok {
			sections = append(sections, Section{Label: label, Tasks: tasks})
		}
	}
	return sections
}
