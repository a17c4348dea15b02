package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedTask is a snapshot of a completed task moved out of the live
// store. It keeps the full task record and adds archive metadata.
type ArchivedTask struct {
	Task
	ArchiveID  string    `json:"archive_id,omitempty"`
	ArchivedAt time.Time `json:"archived_at"`
}

// NewArchivedTask stamps a task for the archive collection.
func NewArchivedTask(t Task, at time.Time) ArchivedTask {
	return ArchivedTask{
		Task:       t,
		ArchiveID:  uuid.NewString(),
		ArchivedAt: at,
	}
}
