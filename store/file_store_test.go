package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tinytask-cli/tinytask/models"
)

func setupTestStore(t *testing.T) *FileStore {
	t.Helper()

	s, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustAdd(t *testing.T, s *FileStore, title string, tags []string, priority models.Priority, dueDate string) models.Task {
	t.Helper()
	task, err := s.Add(title, tags, priority, dueDate, "")
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", title, err)
	}
	return task
}

func TestFileStore_AddAssignsSequentialIDs(t *testing.T) {
	s := setupTestStore(t)

	first := mustAdd(t, s, "Buy milk", nil, models.PriorityHigh, "")
	if first.ID != 1 {
		t.Errorf("first id: got %d, want 1", first.ID)
	}
	if first.Done {
		t.Error("new task should not be done")
	}
	if first.Priority != models.PriorityHigh {
		t.Errorf("priority: got %q, want high", first.Priority)
	}
	if first.Tags == nil || len(first.Tags) != 0 {
		t.Errorf("tags: got %v, want empty slice", first.Tags)
	}

	second := mustAdd(t, s, "Second", nil, "", "")
	if second.ID != 2 {
		t.Errorf("second id: got %d, want 2", second.ID)
	}
	if second.Priority != models.PriorityMedium {
		t.Errorf("default priority: got %q, want medium", second.Priority)
	}

	// Deleting the max id must not cause reuse gaps below it, only above.
	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	third := mustAdd(t, s, "Third", nil, "", "")
	if third.ID != 3 {
		t.Errorf("id after delete: got %d, want 3 (max existing + 1)", third.ID)
	}
}

func TestFileStore_AddThenDeleteRestoresState(t *testing.T) {
	s := setupTestStore(t)

	mustAdd(t, s, "Keep me", []string{"base"}, models.PriorityLow, "2030-01-01")
	before, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	added := mustAdd(t, s, "Transient", nil, "", "")
	if err := s.Delete(added.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	after, err := s.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed by add+delete:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestFileStore_DoneUndoneRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	task := mustAdd(t, s, "Toggle", nil, "", "")

	done, err := s.MarkDone(task.ID)
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if !done.Done {
		t.Error("task should be done")
	}
	if done.CompletedAt == nil {
		t.Error("completed_at should be set when task is marked done")
	}

	undone, err := s.MarkUndone(task.ID)
	if err != nil {
		t.Fatalf("MarkUndone failed: %v", err)
	}
	if undone.Done {
		t.Error("task should not be done after undone")
	}
	if undone.CompletedAt != nil {
		t.Error("completed_at should be cleared when task is reopened")
	}
}

func TestFileStore_NotFoundIsSentinel(t *testing.T) {
	s := setupTestStore(t)
	mustAdd(t, s, "Only", nil, "", "")

	before, _ := s.All()

	title := "New title"
	_, err := s.Edit(2, models.TaskUpdate{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit on absent id: got %v, want ErrNotFound", err)
	}

	after, _ := s.All()
	if !reflect.DeepEqual(before, after) {
		t.Error("failed Edit must leave the store unchanged")
	}

	if _, err := s.MarkDone(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkDone: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
}

func TestFileStore_EditPartialUpdate(t *testing.T) {
	s := setupTestStore(t)
	task := mustAdd(t, s, "Original", []string{"a"}, models.PriorityLow, "2030-05-01")

	title := "Renamed"
	prio := models.PriorityHigh
	updated, err := s.Edit(task.ID, models.TaskUpdate{Title: &title, Priority: &prio})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title: got %q, want %q", updated.Title, "Renamed")
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("priority: got %q, want high", updated.Priority)
	}
	// Unspecified fields stay put.
	if updated.DueDate != "2030-05-01" {
		t.Errorf("due date changed: got %q", updated.DueDate)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"a"}) {
		t.Errorf("tags changed: got %v", updated.Tags)
	}
}

func TestFileStore_UpdateTagsReplaces(t *testing.T) {
	s := setupTestStore(t)
	task := mustAdd(t, s, "Tagged", []string{"old"}, "", "")

	updated, err := s.UpdateTags(task.ID, []string{"work", "urgent"})
	if err != nil {
		t.Fatalf("UpdateTags failed: %v", err)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"work", "urgent"}) {
		t.Errorf("tags: got %v, want [work urgent]", updated.Tags)
	}
}

func TestFileStore_ListFilters(t *testing.T) {
	s := setupTestStore(t)
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	mustAdd(t, s, "overdue pending", nil, models.PriorityHigh, "2026-08-20")
	overdueDone := mustAdd(t, s, "overdue but done", nil, "", "2026-08-20")
	mustAdd(t, s, "due today", nil, "", "2026-08-25")
	mustAdd(t, s, "upcoming", []string{"work"}, models.PriorityLow, "2026-09-01")
	mustAdd(t, s, "no due date", []string{"work"}, "", "")
	mustAdd(t, s, "garbage date", nil, "", "not-a-date")

	if _, err := s.MarkDone(overdueDone.ID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	// Default list hides completed tasks.
	got, err := s.List(ListFilter{Now: now})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("default list: got %d tasks, want 5", len(got))
	}

	// ShowDone includes them.
	got, _ = s.List(ListFilter{ShowDone: true, Now: now})
	if len(got) != 6 {
		t.Errorf("list --all: got %d tasks, want 6", len(got))
	}

	// Tag filter.
	got, _ = s.List(ListFilter{Tag: "work", Now: now})
	if len(got) != 2 {
		t.Errorf("tag filter: got %d tasks, want 2", len(got))
	}

	// Priority filter.
	got, _ = s.List(ListFilter{Priority: models.PriorityHigh, Now: now})
	if len(got) != 1 || got[0].Title != "overdue pending" {
		t.Errorf("priority filter: got %+v", got)
	}

	// Overdue never includes completed tasks or tasks without a usable date.
	got, _ = s.List(ListFilter{ShowDone: true, Due: models.DueOverdue, Now: now})
	if len(got) != 1 || got[0].Title != "overdue pending" {
		t.Errorf("overdue filter: got %+v", got)
	}
	for _, task := range got {
		if task.Done {
			t.Error("overdue result contains a completed task")
		}
		if due, ok := task.DueOn(); !ok || !due.Before(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("overdue result contains non-overdue task %+v", task)
		}
	}

	got, _ = s.List(ListFilter{Due: models.DueToday, Now: now})
	if len(got) != 1 || got[0].Title != "due today" {
		t.Errorf("today filter: got %+v", got)
	}

	got, _ = s.List(ListFilter{Due: models.DueUpcoming, Now: now})
	if len(got) != 1 || got[0].Title != "upcoming" {
		t.Errorf("upcoming filter: got %+v", got)
	}
}

func TestFileStore_SearchTitleThenNote(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Add("Fix the ROOF", nil, "", "", "leaking near chimney"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add("Call plumber", nil, "", "", "roof gutter overflows"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := s.Add("Unrelated", nil, "", "", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := s.Search("roof")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search: got %d tasks, want 2", len(got))
	}
	// Store order preserved; title match and note match both included once.
	if got[0].Title != "Fix the ROOF" || got[1].Title != "Call plumber" {
		t.Errorf("Search order: got %q, %q", got[0].Title, got[1].Title)
	}
}

func TestFileStore_ArchiveCompletedPartitions(t *testing.T) {
	s := setupTestStore(t)

	done := mustAdd(t, s, "finished", nil, "", "")
	pending := mustAdd(t, s, "still open", nil, "", "")
	if _, err := s.MarkDone(done.ID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	moved, err := s.ArchiveCompleted()
	if err != nil {
		t.Fatalf("ArchiveCompleted failed: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved: got %d, want 1", moved)
	}

	live, _ := s.All()
	if len(live) != 1 || live[0].ID != pending.ID {
		t.Errorf("live store after archive: got %+v", live)
	}

	archived, err := s.Archived()
	if err != nil {
		t.Fatalf("Archived failed: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("archive: got %d entries, want 1", len(archived))
	}
	if archived[0].ID != done.ID {
		t.Errorf("archived task id: got %d, want %d", archived[0].ID, done.ID)
	}
	if archived[0].ArchivedAt.IsZero() {
		t.Error("archived task missing archived_at")
	}
	if archived[0].ArchiveID == "" {
		t.Error("archived task missing archive id")
	}

	// Archiving again moves nothing and keeps the archive intact.
	moved, err = s.ArchiveCompleted()
	if err != nil {
		t.Fatalf("second ArchiveCompleted failed: %v", err)
	}
	if moved != 0 {
		t.Errorf("second archive moved %d tasks, want 0", moved)
	}
	archived, _ = s.Archived()
	if len(archived) != 1 {
		t.Errorf("archive grew without completed tasks: %d entries", len(archived))
	}
}

func TestFileStore_ArchivedAtOnDisk(t *testing.T) {
	s := setupTestStore(t)

	task := mustAdd(t, s, "finished", nil, "", "")
	if _, err := s.MarkDone(task.ID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if _, err := s.ArchiveCompleted(); err != nil {
		t.Fatalf("ArchiveCompleted failed: %v", err)
	}

	data, err := os.ReadFile(s.ArchivePath())
	if err != nil {
		t.Fatalf("read archive file: %v", err)
	}
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("archive file is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("archive file: got %d entries, want 1", len(raw))
	}
	if _, ok := raw[0]["archived_at"]; !ok {
		t.Error("archive entry missing archived_at field")
	}
	if raw[0]["id"].(float64) != float64(task.ID) {
		t.Errorf("archive entry id: got %v, want %d", raw[0]["id"], task.ID)
	}
}

func TestFileStore_Clear(t *testing.T) {
	s := setupTestStore(t)

	a := mustAdd(t, s, "a", nil, "", "")
	mustAdd(t, s, "b", nil, "", "")
	mustAdd(t, s, "c", nil, "", "")
	if _, err := s.MarkDone(a.ID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	removed, err := s.Clear(true)
	if err != nil {
		t.Fatalf("Clear(done) failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Clear(done): got %d, want 1", removed)
	}

	removed, err = s.Clear(false)
	if err != nil {
		t.Fatalf("Clear(all) failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Clear(all): got %d, want 2", removed)
	}

	tasks, _ := s.All()
	if len(tasks) != 0 {
		t.Errorf("store not empty after clear: %d tasks", len(tasks))
	}
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	s := setupTestStore(t)
	mustAdd(t, s, "will be lost to corruption", nil, "", "")

	if err := os.WriteFile(s.TasksPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt data file: %v", err)
	}

	tasks, err := s.All()
	if err != nil {
		t.Fatalf("All on corrupt file should not error, got: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("corrupt file should read as empty store, got %d tasks", len(tasks))
	}

	// And the store stays usable: the next add starts over at id 1.
	task := mustAdd(t, s, "fresh start", nil, "", "")
	if task.ID != 1 {
		t.Errorf("id after corruption: got %d, want 1", task.ID)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	task := mustAdd(t, s1, "durable", []string{"keep"}, models.PriorityHigh, "2030-01-02")
	if err := s1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = s2.Close() }()

	got, err := s2.Get(task.ID)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Title != "durable" || got.DueDate != "2030-01-02" || got.Priority != models.PriorityHigh {
		t.Errorf("reloaded task mismatch: %+v", got)
	}
}
