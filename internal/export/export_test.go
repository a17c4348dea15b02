package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/tinytask-cli/tinytask/models"
)

func sampleTasks() []models.Task {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	completed := time.Date(2026, 8, 2, 17, 30, 0, 0, time.UTC)
	return []models.Task{
		{
			ID:        1,
			Title:     "Buy milk",
			Tags:      []string{"shopping", "errand"},
			Priority:  models.PriorityHigh,
			DueDate:   "2026-08-10",
			CreatedAt: created,
		},
		{
			ID:          2,
			Title:       "Ship release",
			Done:        true,
			Tags:        []string{},
			Priority:    models.PriorityMedium,
			Note:        "tag v1.2.0 first",
			CreatedAt:   created,
			CompletedAt: &completed,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "csv", "yaml", "toml", "JSON"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q): %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml): expected error")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleTasks()); err != nil {
		t.Fatalf("Write json failed: %v", err)
	}

	var decoded []models.Task
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d tasks, want 2", len(decoded))
	}
	if decoded[0].Title != "Buy milk" || decoded[1].Note != "tag v1.2.0 first" {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
	// Pretty-printed, not a single line.
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON export should be indented")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleTasks()); err != nil {
		t.Fatalf("Write csv failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][3] != "tags" || rows[0][8] != "completed_at" {
		t.Errorf("header mismatch: %v", rows[0])
	}
	// Tags serialized as a comma-joined string within one cell.
	if rows[1][3] != "shopping,errand" {
		t.Errorf("tags cell: got %q, want %q", rows[1][3], "shopping,errand")
	}
	if rows[1][8] != "" {
		t.Errorf("pending task should have empty completed_at, got %q", rows[1][8])
	}
	if rows[2][2] != "true" {
		t.Errorf("done cell: got %q, want true", rows[2][2])
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleTasks()); err != nil {
		t.Fatalf("Write yaml failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "title: Buy milk") {
		t.Errorf("yaml output missing title: %s", out)
	}
	if !strings.Contains(out, "due_date:") {
		t.Errorf("yaml output should use snake_case keys: %s", out)
	}
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatTOML, sampleTasks()); err != nil {
		t.Fatalf("Write toml failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[[tasks]]") {
		t.Errorf("toml output missing [[tasks]] rows: %s", out)
	}
	if !strings.Contains(out, `title = "Ship release"`) {
		t.Errorf("toml output missing task title: %s", out)
	}
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 5, 6, 0, time.UTC)
	got := DefaultFileName(FormatCSV, now)
	want := "tasks_20260825_140506.csv"
	if got != want {
		t.Errorf("DefaultFileName: got %q, want %q", got, want)
	}
}
