package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Priority represents the priority levels of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

// ParsePriority converts a user-supplied string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority %q: must be low, medium or high", s)
}

// Rank returns the display ordering of a priority: high sorts before medium,
// medium before low. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Task represents a single to-do item.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Done        bool       `json:"done"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     string     `json:"due_date"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// HasTag reports whether the task carries the given tag. Tags are matched
// verbatim: no case folding, no deduplication.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// DueOn returns the parsed due date. ok is false when the task has no due
// date or the stored string is not a valid calendar date.
func (t Task) DueOn() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// TaskUpdate describes a partial update applied by Edit. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Title    *string
	Priority *Priority
	Tags     *[]string
	DueDate  *string
	Note     *string
}

// DueFilter classifies a due date relative to the current calendar date.
type DueFilter string

const (
	DueOverdue  DueFilter = "overdue"
	DueToday    DueFilter = "today"
	DueUpcoming DueFilter = "upcoming"
)

// ParseDueFilter converts a user-supplied string into a DueFilter.
func ParseDueFilter(s string) (DueFilter, error) {
	switch DueFilter(strings.ToLower(strings.TrimSpace(s))) {
	case DueOverdue:
		return DueOverdue, nil
	case DueToday:
		return DueToday, nil
	case DueUpcoming:
		return DueUpcoming, nil
	}
	return "", fmt.Errorf("invalid due filter %q: must be overdue, today or upcoming", s)
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MatchesDue reports whether the task falls into the given due class as of
// today. Tasks without a parseable due date never match. Completed tasks are
// never overdue.
func (t Task) MatchesDue(f DueFilter, today time.Time) bool {
	due, ok := t.DueOn()
	if !ok {
		return false
	}
	day := truncateToDay(today)
	switch f {
	case DueOverdue:
		return due.Before(day) && !t.Done
	case DueToday:
		return due.Equal(day)
	case DueUpcoming:
		return due.After(day)
	}
	return false
}

// SortForDisplay orders tasks for presentation: overdue pending tasks first,
// then ascending due date (tasks without a usable date last), then priority
// high before medium before low. The sort is stable, so ties keep store
// order. The slice is sorted in place and returned.
func SortForDisplay(tasks []Task, today time.Time) []Task {
	// Sentinel past any real due date, stands in for missing/unparseable ones.
	sentinel := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	dueOf := func(t Task) time.Time {
		if d, ok := t.DueOn(); ok {
			return d
		}
		return sentinel
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		oi := tasks[i].MatchesDue(DueOverdue, today)
		oj := tasks[j].MatchesDue(DueOverdue, today)
		if oi != oj {
			return oi
		}
		di, dj := dueOf(tasks[i]), dueOf(tasks[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
	return tasks
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that carries validation
// tags, formatting field errors into a single message.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
