package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/tinytask-cli/tinytask/models"
)

const (
	tasksFileName   = "tasks.json"
	archiveFileName = "archive.json"
	lockFileName    = ".lock"
)

// FileStore implements TaskStore over two JSON array documents in a single
// storage directory. Every mutation is a full load-mutate-save cycle; writes
// go to a temp file and are renamed into place. An advisory flock serializes
// concurrent CLI invocations.
type FileStore struct {
	dir         string
	tasksPath   string
	archivePath string
	flk         *flock.Flock
}

// NewFileStore creates a store rooted at dir, creating the directory and an
// empty data file when absent.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	s := &FileStore{
		dir:         dir,
		tasksPath:   filepath.Join(dir, tasksFileName),
		archivePath: filepath.Join(dir, archiveFileName),
		// The lock lives beside the data file so the rename-into-place write
		// never swaps the locked inode out from under a holder.
		flk: flock.New(filepath.Join(dir, lockFileName)),
	}

	if _, err := os.Stat(s.tasksPath); os.IsNotExist(err) {
		if err := s.writeDocument(s.tasksPath, []models.Task{}); err != nil {
			return nil, fmt.Errorf("failed to initialize data file: %w", err)
		}
	}
	return s, nil
}

// Dir returns the storage directory the store operates on.
func (s *FileStore) Dir() string {
	return s.dir
}

// TasksPath returns the path of the live task document.
func (s *FileStore) TasksPath() string {
	return s.tasksPath
}

// ArchivePath returns the path of the archive document.
func (s *FileStore) ArchivePath() string {
	return s.archivePath
}

// Close releases the advisory lock. Unlock is idempotent.
func (s *FileStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

func (s *FileStore) lock() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock store at %s: %w", s.dir, err)
	}
	return nil
}

func (s *FileStore) unlock() {
	_ = s.flk.Unlock()
}

// loadTasks reads the live document. A missing or corrupt file degrades to
// an empty store; read errors never surface.
func (s *FileStore) loadTasks() []models.Task {
	data, err := os.ReadFile(s.tasksPath)
	if err != nil {
		return []models.Task{}
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return []models.Task{}
	}
	return tasks
}

// loadArchive reads the archive document with the same degrade-to-empty
// semantics as loadTasks.
func (s *FileStore) loadArchive() []models.ArchivedTask {
	data, err := os.ReadFile(s.archivePath)
	if err != nil {
		return []models.ArchivedTask{}
	}
	var archived []models.ArchivedTask
	if err := json.Unmarshal(data, &archived); err != nil {
		return []models.ArchivedTask{}
	}
	return archived
}

// writeDocument marshals v and renames it into place over path.
func (s *FileStore) writeDocument(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	defer func() { _ = os.Remove(tmp) }()

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) saveTasks(tasks []models.Task) error {
	return s.writeDocument(s.tasksPath, tasks)
}

func (s *FileStore) saveArchive(archived []models.ArchivedTask) error {
	return s.writeDocument(s.archivePath, archived)
}

// nextID assigns max(existing)+1, or 1 for an empty store.
func nextID(tasks []models.Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Add appends a new task and persists the document.
func (s *FileStore) Add(title string, tags []string, priority models.Priority, dueDate, note string) (models.Task, error) {
	if err := s.lock(); err != nil {
		return models.Task{}, err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	if tags == nil {
		tags = []string{}
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	task := models.Task{
		ID:        nextID(tasks),
		Title:     title,
		Done:      false,
		Tags:      tags,
		Priority:  priority,
		DueDate:   dueDate,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	tasks = append(tasks, task)
	if err := s.saveTasks(tasks); err != nil {
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return task, nil
}

// List returns tasks matching the filter, preserving store order.
func (s *FileStore) List(filter ListFilter) ([]models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := []models.Task{}
	for _, t := range s.loadTasks() {
		if !filter.ShowDone && t.Done {
			continue
		}
		if filter.Tag != "" && !t.HasTag(filter.Tag) {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Due != "" && !t.MatchesDue(filter.Due, now) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// All returns every live task in store order.
func (s *FileStore) All() ([]models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()
	return s.loadTasks(), nil
}

// Get retrieves a single task by id.
func (s *FileStore) Get(id int) (models.Task, error) {
	if err := s.lock(); err != nil {
		return models.Task{}, err
	}
	defer s.unlock()

	for _, t := range s.loadTasks() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// MarkDone completes a task and stamps completed_at.
func (s *FileStore) MarkDone(id int) (models.Task, error) {
	return s.setDone(id, true)
}

// MarkUndone reopens a task and clears completed_at.
func (s *FileStore) MarkUndone(id int) (models.Task, error) {
	return s.setDone(id, false)
}

func (s *FileStore) setDone(id int, done bool) (models.Task, error) {
	if err := s.lock(); err != nil {
		return models.Task{}, err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Done = done
		if done {
			now := time.Now().UTC()
			tasks[i].CompletedAt = &now
		} else {
			tasks[i].CompletedAt = nil
		}
		if err := s.saveTasks(tasks); err != nil {
			return models.Task{}, fmt.Errorf("failed to save task %d: %w", id, err)
		}
		return tasks[i], nil
	}
	return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// Delete removes exactly one task by id.
func (s *FileStore) Delete(id int) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	kept := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err := s.saveTasks(kept); err != nil {
		return fmt.Errorf("failed to save after deleting task %d: %w", id, err)
	}
	return nil
}

// UpdateTags replaces the tag list of a task.
func (s *FileStore) UpdateTags(id int, tags []string) (models.Task, error) {
	if tags == nil {
		tags = []string{}
	}
	return s.Edit(id, models.TaskUpdate{Tags: &tags})
}

// Edit applies a partial update; nil fields stay untouched.
func (s *FileStore) Edit(id int, update models.TaskUpdate) (models.Task, error) {
	if err := s.lock(); err != nil {
		return models.Task{}, err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if update.Title != nil {
			tasks[i].Title = *update.Title
		}
		if update.Priority != nil {
			tasks[i].Priority = *update.Priority
		}
		if update.Tags != nil {
			tasks[i].Tags = *update.Tags
		}
		if update.DueDate != nil {
			tasks[i].DueDate = *update.DueDate
		}
		if update.Note != nil {
			tasks[i].Note = *update.Note
		}
		if err := s.saveTasks(tasks); err != nil {
			return models.Task{}, fmt.Errorf("failed to save task %d: %w", id, err)
		}
		return tasks[i], nil
	}
	return models.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// Search matches the query case-insensitively against title first, then
// note. A task is included at most once, in store order.
func (s *FileStore) Search(query string) ([]models.Task, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()

	q := strings.ToLower(query)
	result := []models.Task{}
	for _, t := range s.loadTasks() {
		if strings.Contains(strings.ToLower(t.Title), q) {
			result = append(result, t)
			continue
		}
		if t.Note != "" && strings.Contains(strings.ToLower(t.Note), q) {
			result = append(result, t)
		}
	}
	return result, nil
}

// ArchiveCompleted partitions the live set: completed tasks are stamped and
// appended to the archive document, pending tasks remain. Returns the count
// moved.
func (s *FileStore) ArchiveCompleted() (int, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	pending := make([]models.Task, 0, len(tasks))
	completed := []models.Task{}
	for _, t := range tasks {
		if t.Done {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	if len(completed) == 0 {
		return 0, nil
	}

	archived := s.loadArchive()
	now := time.Now().UTC()
	for _, t := range completed {
		archived = append(archived, models.NewArchivedTask(t, now))
	}

	// Archive is written before the live set shrinks: a crash in between
	// duplicates completed tasks rather than losing them.
	if err := s.saveArchive(archived); err != nil {
		return 0, fmt.Errorf("failed to save archive: %w", err)
	}
	if err := s.saveTasks(pending); err != nil {
		return 0, fmt.Errorf("failed to save live tasks after archiving: %w", err)
	}
	return len(completed), nil
}

// Archived returns the archive collection in stored order.
func (s *FileStore) Archived() ([]models.ArchivedTask, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.unlock()
	return s.loadArchive(), nil
}

// Clear bulk-deletes tasks and returns the number removed.
func (s *FileStore) Clear(doneOnly bool) (int, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.unlock()

	tasks := s.loadTasks()
	kept := []models.Task{}
	if doneOnly {
		for _, t := range tasks {
			if !t.Done {
				kept = append(kept, t)
			}
		}
	}
	removed := len(tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveTasks(kept); err != nil {
		return 0, fmt.Errorf("failed to save after clearing tasks: %w", err)
	}
	return removed, nil
}
