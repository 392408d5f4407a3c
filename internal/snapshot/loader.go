// Package snapshot loads task snapshot files for the taskdeps CLI. The file
// format mirrors what the engine consumes from a task store: id, completion
// flag, and declared dependency ids per task.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mobiplan/taskdeps/internal/deps"
)

// File is the on-disk snapshot format.
type File struct {
	Tasks []Task `json:"tasks"`
}

// Task is one task record in a snapshot file.
type Task struct {
	ID        string   `json:"id"`
	Complete  bool     `json:"complete"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// Load reads and validates a snapshot file, returning records ready for
// Engine.ApplySnapshot. Declared dependency order is preserved.
func Load(path string) ([]deps.TaskRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Parse(data)
}

// Parse decodes snapshot JSON. Empty and duplicate task ids are rejected
// because the engine keys everything by id.
func Parse(data []byte) ([]deps.TaskRecord, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	seen := make(map[string]bool, len(file.Tasks))
	records := make([]deps.TaskRecord, 0, len(file.Tasks))
	for i, task := range file.Tasks {
		if task.ID == "" {
			return nil, fmt.Errorf("task at index %d has an empty id", i)
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("duplicate task id %q", task.ID)
		}
		seen[task.ID] = true

		rec := deps.TaskRecord{
			ID:       deps.TaskID(task.ID),
			Complete: task.Complete,
		}
		for _, dep := range task.DependsOn {
			rec.DependencyIDs = append(rec.DependencyIDs, deps.TaskID(dep))
		}
		records = append(records, rec)
	}

	return records, nil
}
