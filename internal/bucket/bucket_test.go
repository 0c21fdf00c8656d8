package bucket

import (
	"testing"
	"time"

	"github.com/planfold/planfold/internal/model"
)

// Monday, so next week's Mon-Sun window runs Jun 17 through Jun 23.
var monday = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)

func TestClassifyWithDueDate(t *testing.T) {
	tests := []struct {
		name string
		due  *model.Date
		want string
	}{
		{"overdue", model.NewDate(2024, time.June, 3), model.BucketDoToday},
		{"due today", model.NewDate(2024, time.June, 10), model.BucketDoToday},
		{"due tomorrow", model.NewDate(2024, time.June, 11), model.BucketDoNextWeek},
		{"due this sunday", model.NewDate(2024, time.June, 16), model.BucketDoNextWeek},
		{"due next monday", model.NewDate(2024, time.June, 17), model.BucketDoNextWeek},
		{"due next sunday", model.NewDate(2024, time.June, 23), model.BucketDoNextWeek},
		{"due after next week", model.NewDate(2024, time.June, 24), model.BucketDoLater},
		{"due far out", model.NewDate(2024, time.August, 1), model.BucketDoLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.Task{DueDate: tt.due}
			if got := Classify(task, monday); got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyWithoutDueDate(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		want    string
	}{
		{"created today", monday, model.BucketRecentlyAssigned},
		{"created yesterday", monday.AddDate(0, 0, -1), model.BucketRecentlyAssigned},
		{"created three days ago", monday.AddDate(0, 0, -3), model.BucketDoLater},
		{"created last month", monday.AddDate(0, -1, 0), model.BucketDoLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.Task{CreatedAt: tt.created}
			if got := Classify(task, monday); got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyMidweek(t *testing.T) {
	// From a Wednesday the window still closes the Sunday after next
	// Monday: Jun 12 -> window Jun 17 through Jun 23.
	wednesday := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.Local)

	task := model.Task{DueDate: model.NewDate(2024, time.June, 23)}
	if got := Classify(task, wednesday); got != model.BucketDoNextWeek {
		t.Errorf("due on closing sunday = %q, want do-next-week", got)
	}
	task.DueDate = model.NewDate(2024, time.June, 24)
	if got := Classify(task, wednesday); got != model.BucketDoLater {
		t.Errorf("due past closing sunday = %q, want do-later", got)
	}
}

func TestResolve(t *testing.T) {
	dueToday := model.Task{DueDate: model.NewDate(2024, time.June, 10)}

	bucket, follows := Resolve(dueToday, monday)
	if bucket != model.BucketDoToday || !follows {
		t.Errorf("no override: got %q, %v; want do-today, true", bucket, follows)
	}

	pinned := dueToday
	pinned.ActionTime = model.BucketDoLater
	bucket, follows = Resolve(pinned, monday)
	if bucket != model.BucketDoLater {
		t.Errorf("override should win verbatim, got %q", bucket)
	}
	if follows {
		t.Error("override that disagrees with the suggestion should report false")
	}

	agreeing := dueToday
	agreeing.ActionTime = model.BucketDoToday
	if _, follows := Resolve(agreeing, monday); !follows {
		t.Error("override matching the suggestion should report true")
	}
}
