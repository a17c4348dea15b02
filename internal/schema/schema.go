// Package schema validates the on-disk task documents against an embedded
// JSON Schema. Used by the doctor command to flag hand-edited files before
// the store silently degrades them to an empty collection.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "done", "priority", "created_at"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "title": {"type": "string", "minLength": 1},
      "done": {"type": "boolean"},
      "tags": {"type": "array", "items": {"type": "string"}},
      "priority": {"enum": ["low", "medium", "high"]},
      "due_date": {"type": "string"},
      "note": {"type": "string"},
      "created_at": {"type": "string"},
      "completed_at": {"type": ["string", "null"]},
      "archive_id": {"type": "string"},
      "archived_at": {"type": "string"}
    }
  }
}`

// Issue is a single schema violation found in a data file.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

var compiled *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(tasksSchema)); err != nil {
		panic(fmt.Sprintf("embedded schema broken: %v", err))
	}
	compiled = compiler.MustCompile("tasks.schema.json")
}

// ValidateFile checks a task or archive document on disk. A missing file is
// valid (the store treats it as empty). A file that is not JSON at all is
// reported as a single issue.
func ValidateFile(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateDocument(data), nil
}

// ValidateDocument checks raw JSON bytes against the task array schema.
func ValidateDocument(data []byte) []Issue {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []Issue{{Message: fmt.Sprintf("not valid JSON: %v", err)}}
	}

	err := compiled.Validate(doc)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Message: err.Error()}}
	}

	var issues []Issue
	collect(&issues, ve)
	return issues
}

// collect flattens the validation error tree into leaf issues.
func collect(issues *[]Issue, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*issues = append(*issues, Issue{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collect(issues, cause)
	}
}

func pointerToPath(pointer string) string {
	if pointer == "" {
		return ""
	}
	return "$" + strings.ReplaceAll(pointer, "/", ".")
}
