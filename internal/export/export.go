// Package export renders read-only projections of the task list in the
// formats the CLI can write to disk.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/tinytask-cli/tinytask/models"
)

// Format identifies an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat converts a user-supplied string into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported format %q: supported formats are json, csv, yaml, toml", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// DefaultFileName builds the timestamped filename used when no output path
// is given.
func DefaultFileName(f Format, now time.Time) string {
	return fmt.Sprintf("tasks_%s.%s", now.Format("20060102_150405"), f.Ext())
}

// csvHeader lists the task field names in storage order. Tags are written as
// a comma-joined string; every other field as its string form.
var csvHeader = []string{"id", "title", "done", "tags", "priority", "due_date", "note", "created_at", "completed_at"}

// record is the flattened row shape shared by the CSV, YAML and TOML
// encodings.
type record struct {
	ID          int      `yaml:"id" toml:"id"`
	Title       string   `yaml:"title" toml:"title"`
	Done        bool     `yaml:"done" toml:"done"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Priority    string   `yaml:"priority" toml:"priority"`
	DueDate     string   `yaml:"due_date" toml:"due_date"`
	Note        string   `yaml:"note" toml:"note"`
	CreatedAt   string   `yaml:"created_at" toml:"created_at"`
	CompletedAt string   `yaml:"completed_at" toml:"completed_at"`
}

func toRecord(t models.Task) record {
	completed := ""
	if t.CompletedAt != nil {
		completed = t.CompletedAt.Format(time.RFC3339)
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return record{
		ID:          t.ID,
		Title:       t.Title,
		Done:        t.Done,
		Tags:        tags,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Note:        t.Note,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		CompletedAt: completed,
	}
}

// Write encodes tasks to w in the given format.
func Write(w io.Writer, f Format, tasks []models.Task) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	case FormatTOML:
		return writeTOML(w, tasks)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// writeJSON emits the task objects exactly as stored, pretty-printed.
func writeJSON(w io.Writer, tasks []models.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func writeCSV(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		r := toRecord(t)
		row := []string{
			strconv.Itoa(r.ID),
			r.Title,
			strconv.FormatBool(r.Done),
			strings.Join(r.Tags, ","),
			r.Priority,
			r.DueDate,
			r.Note,
			r.CreatedAt,
			r.CompletedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeYAML(w io.Writer, tasks []models.Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(records)
}

func writeTOML(w io.Writer, tasks []models.Task) error {
	// TOML has no top-level array, so rows nest under [[tasks]].
	doc := struct {
		Tasks []record `toml:"tasks"`
	}{Tasks: make([]record, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, toRecord(t))
	}
	return toml.NewEncoder(w).Encode(doc)
}
