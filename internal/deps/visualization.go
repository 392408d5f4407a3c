package deps

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeInfo describes one task for graph export.
type NodeInfo struct {
	ID         TaskID   `json:"id"`
	Complete   bool     `json:"complete"`
	Valid      bool     `json:"valid"`
	Incomplete []TaskID `json:"incompleteDependencyIds,omitempty"`
	Issue      string   `json:"issue,omitempty"`
}

// EdgeInfo describes one dependency edge (task -> prerequisite).
type EdgeInfo struct {
	From TaskID `json:"from"`
	To   TaskID `json:"to"`
}

// GraphStats aggregates task counts for dashboard views.
type GraphStats struct {
	TotalTasks    int `json:"totalTasks"`
	CompleteTasks int `json:"completeTasks"`
	ReadyTasks    int `json:"readyTasks"`
	BlockedTasks  int `json:"blockedTasks"`
	IssueTasks    int `json:"issueTasks"`
	TotalEdges    int `json:"totalEdges"`
}

// GraphInfo is the full graph structure for visualization or export.
type GraphInfo struct {
	Nodes []NodeInfo `json:"nodes"`
	Edges []EdgeInfo `json:"edges"`
	Stats GraphStats `json:"stats"`
}

// GraphInfo exports the current graph with per-task validation state. Nodes
// and edges are emitted in lexicographic id order so output is stable across
// runs.
func (e *Engine) GraphInfo() *GraphInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.graph.ids()
	info := &GraphInfo{
		Nodes: make([]NodeInfo, 0, len(ids)),
		Edges: []EdgeInfo{},
		Stats: GraphStats{TotalTasks: len(ids), TotalEdges: e.graph.edgeCount},
	}

	for _, id := range ids {
		node := e.graph.nodes[id]
		entry := e.computeLocked(node)
		res := entry.result

		ni := NodeInfo{
			ID:         id,
			Complete:   node.Complete,
			Valid:      res.Valid,
			Incomplete: res.IncompleteDependencyIDs,
		}
		if res.Issue != nil {
			ni.Issue = res.Issue.Kind.String()
		}
		info.Nodes = append(info.Nodes, ni)

		if node.Complete {
			info.Stats.CompleteTasks++
		}
		switch {
		case res.Issue != nil:
			info.Stats.IssueTasks++
		case res.Valid:
			info.Stats.ReadyTasks++
		default:
			info.Stats.BlockedTasks++
		}

		for _, dep := range node.DependencyIDs {
			info.Edges = append(info.Edges, EdgeInfo{From: id, To: dep})
		}
	}

	return info
}

// ExportJSON renders the graph as indented JSON.
func (e *Engine) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.GraphInfo(), "", "  ")
}

// ExportDOT renders the graph in DOT format for Graphviz. Ready tasks are
// green, blocked tasks grey, tasks with integrity issues salmon.
func (e *Engine) ExportDOT() string {
	info := e.GraphInfo()

	var sb strings.Builder
	sb.WriteString("digraph TaskDependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=filled];\n\n")

	for _, node := range info.Nodes {
		color := "lightgrey"
		switch {
		case node.Issue != "":
			color = "salmon"
		case node.Valid:
			color = "lightgreen"
		}

		label := string(node.ID)
		if node.Complete {
			label += "\\n(complete)"
		}
		if node.Issue != "" {
			label += fmt.Sprintf("\\n%s", node.Issue)
		}
		sb.WriteString(fmt.Sprintf("  %q [label=\"%s\", fillcolor=%q];\n", node.ID, label, color))
	}

	sb.WriteString("\n")
	for _, edge := range info.Edges {
		sb.WriteString(fmt.Sprintf("  %q -> %q;\n", edge.From, edge.To))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  \"stats\" [label=\"Tasks: %d\\nReady: %d\\nBlocked: %d\\nIssues: %d\", shape=note, fillcolor=lightyellow];\n",
		info.Stats.TotalTasks, info.Stats.ReadyTasks, info.Stats.BlockedTasks, info.Stats.IssueTasks))
	sb.WriteString("}\n")

	return sb.String()
}
