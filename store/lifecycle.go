package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const disabledMarkerName = ".disabled"

// disabledMarker is the informational content of the marker file. Only the
// file's existence is contract-bearing.
type disabledMarker struct {
	DisabledAt time.Time `json:"disabled_at"`
	Reason     string    `json:"reason"`
}

func (s *FileStore) markerPath() string {
	return filepath.Join(s.dir, disabledMarkerName)
}

// IsDisabled reports whether the disabled marker file exists.
func (s *FileStore) IsDisabled() bool {
	_, err := os.Stat(s.markerPath())
	return err == nil
}

// Disable creates the marker file, putting the CLI into a state where
// mutating commands refuse to run.
func (s *FileStore) Disable(reason string) error {
	if reason == "" {
		reason = "manually disabled"
	}
	content, err := json.MarshalIndent(disabledMarker{
		DisabledAt: time.Now().UTC(),
		Reason:     reason,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.markerPath(), content, 0o644)
}

// Enable removes the marker file. A failed removal is non-fatal; the marker
// simply stays in place.
func (s *FileStore) Enable() {
	_ = os.Remove(s.markerPath())
}

// Uninstall deletes the entire storage directory. Best-effort: returns true
// when the directory is gone afterwards.
func (s *FileStore) Uninstall() bool {
	if err := os.RemoveAll(s.dir); err != nil {
		return false
	}
	return true
}
