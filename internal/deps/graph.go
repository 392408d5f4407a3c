package deps

import "sort"

// graph is the adjacency structure built from one snapshot. Nodes are task
// ids; edges point from a task to each task it depends on. Construction is
// O(n + e) and has no side effects.
type graph struct {
	nodes map[TaskID]*TaskNode
	// dependents holds reverse edges: which tasks list the key as a
	// dependency. Needed for minimal invalidation when a completion flips.
	dependents map[TaskID][]TaskID
	edgeCount  int
}

// buildGraph constructs the node table and reverse index from a snapshot.
// Dependency ids that resolve to no task are retained on the node as dangling
// markers so the integrity check can report them; they produce no reverse
// edge.
func buildGraph(records []TaskRecord) *graph {
	g := &graph{
		nodes:      make(map[TaskID]*TaskNode, len(records)),
		dependents: make(map[TaskID][]TaskID),
	}

	for _, rec := range records {
		g.nodes[rec.ID] = &TaskNode{
			ID:            rec.ID,
			Complete:      rec.Complete,
			DependencyIDs: dedupeIDs(rec.DependencyIDs),
		}
	}

	for _, node := range g.nodes {
		for _, dep := range node.DependencyIDs {
			g.edgeCount++
			if _, ok := g.nodes[dep]; !ok {
				continue // dangling, reported by the integrity check
			}
			g.dependents[dep] = append(g.dependents[dep], node.ID)
		}
	}

	// Stable reverse-edge order keeps invalidation and notification order
	// reproducible across runs.
	for id := range g.dependents {
		sortIDs(g.dependents[id])
	}

	return g
}

// node looks up a task node by id.
func (g *graph) node(id TaskID) (*TaskNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// dependentsOf returns the tasks that list id as a dependency, in sorted
// order. The returned slice is shared and must not be mutated.
func (g *graph) dependentsOf(id TaskID) []TaskID {
	return g.dependents[id]
}

// ids returns all task ids in lexicographic order, the traversal order used
// by the integrity check.
func (g *graph) ids() []TaskID {
	out := make([]TaskID, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

func (g *graph) size() int {
	return len(g.nodes)
}

// dedupeIDs drops repeated dependency ids while preserving declared order.
func dedupeIDs(ids []TaskID) []TaskID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[TaskID]bool, len(ids))
	out := make([]TaskID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func sortIDs(ids []TaskID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
