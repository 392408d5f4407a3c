package deps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visualizationEngine() *Engine {
	engine := New()
	engine.ApplySnapshot([]TaskRecord{
		{ID: "a", Complete: true},
		{ID: "b", DependencyIDs: []TaskID{"a"}},
		{ID: "c", DependencyIDs: []TaskID{"ghost"}},
		{ID: "d", DependencyIDs: []TaskID{"b"}},
	})
	return engine
}

func TestEngine_GraphInfo(t *testing.T) {
	info := visualizationEngine().GraphInfo()

	require.Len(t, info.Nodes, 4)
	// Lexicographic node order keeps output stable
	assert.Equal(t, TaskID("a"), info.Nodes[0].ID)
	assert.Equal(t, TaskID("d"), info.Nodes[3].ID)

	assert.Equal(t, 4, info.Stats.TotalTasks)
	assert.Equal(t, 3, info.Stats.TotalEdges)
	assert.Equal(t, 1, info.Stats.CompleteTasks)
	// a and b are ready, d waits on b, c has a dangling reference
	assert.Equal(t, 2, info.Stats.ReadyTasks)
	assert.Equal(t, 1, info.Stats.BlockedTasks)
	assert.Equal(t, 1, info.Stats.IssueTasks)

	assert.Contains(t, info.Edges, EdgeInfo{From: "b", To: "a"})
	assert.Contains(t, info.Edges, EdgeInfo{From: "c", To: "ghost"})
}

func TestEngine_GraphInfoIssueLabels(t *testing.T) {
	engine := New()
	engine.ApplySnapshot([]TaskRecord{
		{ID: "a", DependencyIDs: []TaskID{"b"}},
		{ID: "b", DependencyIDs: []TaskID{"a"}},
	})

	info := engine.GraphInfo()
	require.Len(t, info.Nodes, 2)
	assert.Equal(t, "cycle", info.Nodes[0].Issue)
	assert.Equal(t, "cycle", info.Nodes[1].Issue)
}

func TestEngine_ExportJSON(t *testing.T) {
	data, err := visualizationEngine().ExportJSON()
	require.NoError(t, err)

	var decoded GraphInfo
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Nodes, 4)
	assert.Equal(t, 4, decoded.Stats.TotalTasks)
}

func TestEngine_ExportDOT(t *testing.T) {
	dot := visualizationEngine().ExportDOT()

	assert.Contains(t, dot, "digraph TaskDependencies")
	assert.Contains(t, dot, `"b" -> "a";`)
	assert.Contains(t, dot, "lightgreen")
	assert.Contains(t, dot, "salmon")
	assert.Contains(t, dot, "Tasks: 4")
}

func TestEngine_ExportDOTEmptyGraph(t *testing.T) {
	dot := New().ExportDOT()
	assert.Contains(t, dot, "digraph TaskDependencies")
	assert.Contains(t, dot, "Tasks: 0")
}
