package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mobiplan/taskdeps/internal/deps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	records, err := Parse([]byte(`{
		"tasks": [
			{"id": "groceries", "complete": true},
			{"id": "cook", "dependsOn": ["groceries", "clean-kitchen"]}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, deps.TaskID("groceries"), records[0].ID)
	assert.True(t, records[0].Complete)
	assert.Empty(t, records[0].DependencyIDs)

	assert.Equal(t, deps.TaskID("cook"), records[1].ID)
	assert.False(t, records[1].Complete)
	assert.Equal(t, []deps.TaskID{"groceries", "clean-kitchen"}, records[1].DependencyIDs)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "invalid json",
			input:   `{"tasks": [`,
			wantErr: "failed to parse",
		},
		{
			name:    "empty id",
			input:   `{"tasks": [{"id": ""}]}`,
			wantErr: "empty id",
		},
		{
			name:    "duplicate id",
			input:   `{"tasks": [{"id": "a"}, {"id": "a"}]}`,
			wantErr: "duplicate task id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_EmptyFile(t *testing.T) {
	records, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	content := `{"tasks": [{"id": "a"}, {"id": "b", "dependsOn": ["a"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
