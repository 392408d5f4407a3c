package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	path := writeSnapshot(t, `{"tasks": [
		{"id": "groceries", "complete": true},
		{"id": "cook", "dependsOn": ["groceries", "clean"]},
		{"id": "clean"}
	]}`)

	out, err := runRoot(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "groceries")
	assert.Contains(t, out, "3 tasks")
}

func TestCheckCommand_SingleTask(t *testing.T) {
	path := writeSnapshot(t, `{"tasks": [
		{"id": "a", "complete": true},
		{"id": "b", "dependsOn": ["a"]}
	]}`)

	out, err := runRoot(t, "check", path, "--task", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "1 tasks, 1 ready")

	resetCheckFlags()
}

func TestCheckCommand_UnknownTask(t *testing.T) {
	path := writeSnapshot(t, `{"tasks": [{"id": "a"}]}`)

	_, err := runRoot(t, "check", path, "--task", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	resetCheckFlags()
}

func TestCheckCommand_DOT(t *testing.T) {
	path := writeSnapshot(t, `{"tasks": [{"id": "a"}, {"id": "b", "dependsOn": ["a"]}]}`)

	out, err := runRoot(t, "check", path, "--dot")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph TaskDependencies")

	resetCheckFlags()
}

func TestCheckCommand_FailOnBlocked(t *testing.T) {
	path := writeSnapshot(t, `{"tasks": [{"id": "a"}, {"id": "b", "dependsOn": ["a"]}]}`)

	_, err := runRoot(t, "check", path, "--fail-on-blocked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")

	resetCheckFlags()
}

func TestCheckCommand_MissingFile(t *testing.T) {
	_, err := runRoot(t, "check", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

// resetCheckFlags clears flag state shared across tests in this package.
func resetCheckFlags() {
	checkTask = ""
	graphJSON = false
	graphDOT = false
	failBlocked = false
}
