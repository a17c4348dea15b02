package store

import (
	"errors"
	"time"

	"github.com/tinytask-cli/tinytask/models"
)

// ErrNotFound is returned by id-keyed operations when no task matches.
// It is a normal outcome, not a store failure; callers check it with
// errors.Is.
var ErrNotFound = errors.New("task not found")

// ListFilter narrows the result of List. Zero values leave the corresponding
// dimension unfiltered.
type ListFilter struct {
	// ShowDone includes completed tasks in the result.
	ShowDone bool
	// Tag keeps only tasks whose tag list contains this exact value.
	Tag string
	// Priority keeps only tasks with this priority.
	Priority models.Priority
	// Due keeps only tasks whose due date falls in this class. Tasks with a
	// missing or unparseable due date are dropped when set.
	Due models.DueFilter
	// Now anchors due classification. Zero means time.Now().
	Now time.Time
}

// TaskStore defines the contract for task persistence: durable CRUD over a
// list of task records backed by a single document, plus a parallel archive
// collection.
type TaskStore interface {
	// Add appends a new task with a freshly assigned id and persists it.
	Add(title string, tags []string, priority models.Priority, dueDate, note string) (models.Task, error)

	// List returns tasks matching the filter, in store order.
	List(filter ListFilter) ([]models.Task, error)

	// All returns every live task, including completed ones, in store order.
	All() ([]models.Task, error)

	// Get retrieves a single task by id.
	Get(id int) (models.Task, error)

	// MarkDone completes a task and stamps completed_at.
	MarkDone(id int) (models.Task, error)

	// MarkUndone reopens a task and clears completed_at.
	MarkUndone(id int) (models.Task, error)

	// Delete removes exactly one task. ErrNotFound when the id is absent.
	Delete(id int) error

	// UpdateTags replaces a task's tag list.
	UpdateTags(id int, tags []string) (models.Task, error)

	// Edit applies a partial update; nil fields are left unchanged.
	Edit(id int, update models.TaskUpdate) (models.Task, error)

	// Search matches the query case-insensitively against title, then note.
	// Each matching task appears once, in store order.
	Search(query string) ([]models.Task, error)

	// ArchiveCompleted moves completed tasks to the archive collection and
	// returns the number moved.
	ArchiveCompleted() (int, error)

	// Archived returns the archive collection.
	Archived() ([]models.ArchivedTask, error)

	// Clear bulk-deletes tasks: completed only when doneOnly, otherwise all.
	// Returns the number removed.
	Clear(doneOnly bool) (int, error)

	// Close releases the store's advisory lock.
	Close() error
}
