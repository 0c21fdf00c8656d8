// Package cache holds the process-wide query cache shared by every view.
// Reads and writes agree on where data lives through a closed set of typed
// query keys; bulk patches dispatch on the key variant, so a mutation can
// reach every page/sort variant of a logical collection in one pass.
package cache

// Key identifies one cached query result. Implementations are small
// comparable structs, so two keys built from the same logical parameters
// are equal and map to the same entry.
type Key interface {
	isKey()
}

// MyTasksQuery is one page of the caller's own task summary.
type MyTasksQuery struct {
	Page int
	Size int
	Sort string
}

// ProjectTasksQuery is one page of a project's task list.
type ProjectTasksQuery struct {
	ProjectID string
	Page      int
	Size      int
	Sort      string
}

// TaskQuery is a single task by ID.
type TaskQuery struct {
	ID string
}

// ProjectsQuery is one page of the project list.
type ProjectsQuery struct {
	Page int
	Size int
}

// ProjectQuery is a single project by ID.
type ProjectQuery struct {
	ID string
}

// TeamQuery is a single team by ID.
type TeamQuery struct {
	ID string
}

// TeamProgressQuery is a team's completion rollup.
type TeamProgressQuery struct {
	TeamID string
}

// GoalsQuery is a team's goal list.
type GoalsQuery struct {
	TeamID string
}

// NotesQuery is a project's note list.
type NotesQuery struct {
	ProjectID string
}

// MeQuery is the authenticated user's own profile.
type MeQuery struct{}

func (MyTasksQuery) isKey()      {}
func (ProjectTasksQuery) isKey() {}
func (TaskQuery) isKey()         {}
func (ProjectsQuery) isKey()     {}
func (ProjectQuery) isKey()      {}
func (TeamQuery) isKey()         {}
func (TeamProgressQuery) isKey() {}
func (GoalsQuery) isKey()        {}
func (NotesQuery) isKey()        {}
func (MeQuery) isKey()           {}

// Predicate selects keys for bulk operations.
type Predicate func(Key) bool

// IsTaskCollection matches every paged task collection, across all
// page/size/sort variants and all projects.
func IsTaskCollection(k Key) bool {
	switch k.(type) {
	case MyTasksQuery, ProjectTasksQuery:
		return true
	}
	return false
}

// IsProjectCollection matches every paged project collection.
func IsProjectCollection(k Key) bool {
	_, ok := k.(ProjectsQuery)
	return ok
}

// TaskCollectionsFor matches the collections a task belonging to the
// given project can appear in: every my-tasks page, plus the task lists
// of that project and no other.
func TaskCollectionsFor(projectID string) Predicate {
	return func(k Key) bool {
		switch q := k.(type) {
		case MyTasksQuery:
			return true
		case ProjectTasksQuery:
			return q.ProjectID == projectID
		}
		return false
	}
}

// TaskRelated matches the collections that can embed the task plus its
// own single-item entry. Every task mutation must patch exactly this set
// or stale readers survive.
func TaskRelated(id string) Predicate {
	return func(k Key) bool {
		if IsTaskCollection(k) {
			return true
		}
		tk, ok := k.(TaskQuery)
		return ok && tk.ID == id
	}
}

// ProjectRelated matches project collections plus the project's own entry.
func ProjectRelated(id string) Predicate {
	return func(k Key) bool {
		if IsProjectCollection(k) {
			return true
		}
		pk, ok := k.(ProjectQuery)
		return ok && pk.ID == id
	}
}
