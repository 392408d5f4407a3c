package deps

// checkIntegrity classifies structural defects for every node in the graph.
// It runs once per full graph build, in O(n + e).
//
// A task carries at most one issue. When several defects apply, the first of
// self-dependency, dangling reference, cycle wins; a task that is only pulled
// into a cycle by others still reports the cycle.
func checkIntegrity(g *graph) map[TaskID]*IntegrityIssue {
	issues := make(map[TaskID]*IntegrityIssue)

	for id, node := range g.nodes {
		for _, dep := range node.DependencyIDs {
			if dep == id {
				issues[id] = &IntegrityIssue{Kind: IssueSelfDependency}
				break
			}
		}
		if issues[id] != nil {
			continue
		}
		for _, dep := range node.DependencyIDs {
			if _, ok := g.nodes[dep]; !ok {
				issues[id] = &IntegrityIssue{Kind: IssueDanglingReference, MissingID: dep}
				break
			}
		}
	}

	detectCycles(g, issues)
	return issues
}

type nodeColor uint8

const (
	colorWhite nodeColor = iota // not yet visited
	colorGray                   // on the current DFS path
	colorBlack                  // fully explored
)

// dfsFrame tracks one node on the explicit DFS stack; next is the index of
// the next dependency edge to follow.
type dfsFrame struct {
	id   TaskID
	next int
}

// detectCycles runs an iterative three-color depth-first traversal over the
// full node set. A back-edge to a gray node means a cycle; its members are
// reconstructed by unwinding the current path from the point the back-edge
// target was pushed. Roots are visited in lexicographic id order so repeated
// runs over an unchanged graph report identical member orderings.
func detectCycles(g *graph, issues map[TaskID]*IntegrityIssue) {
	colors := make(map[TaskID]nodeColor, len(g.nodes))

	for _, root := range g.ids() {
		if colors[root] != colorWhite {
			continue
		}
		colors[root] = colorGray
		stack := []dfsFrame{{id: root}}

		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			node := g.nodes[frame.id]

			if frame.next >= len(node.DependencyIDs) {
				colors[frame.id] = colorBlack
				stack = stack[:len(stack)-1]
				continue
			}

			dep := node.DependencyIDs[frame.next]
			frame.next++

			if dep == frame.id {
				continue // self edge, reported as SelfDependency
			}
			if _, ok := g.nodes[dep]; !ok {
				continue // dangling edge, reported separately
			}

			switch colors[dep] {
			case colorWhite:
				colors[dep] = colorGray
				stack = append(stack, dfsFrame{id: dep})
			case colorGray:
				recordCycle(issues, cycleMembers(stack, dep))
			}
		}
	}
}

// cycleMembers unwinds the DFS path from the frame where target was pushed to
// the top of the stack.
func cycleMembers(stack []dfsFrame, target TaskID) []TaskID {
	start := 0
	for i := range stack {
		if stack[i].id == target {
			start = i
			break
		}
	}
	members := make([]TaskID, 0, len(stack)-start)
	for i := start; i < len(stack); i++ {
		members = append(members, stack[i].id)
	}
	return members
}

// recordCycle attaches the cycle to every member that has no issue yet. All
// members of one cycle share the same ordered member sequence.
func recordCycle(issues map[TaskID]*IntegrityIssue, members []TaskID) {
	issue := &IntegrityIssue{Kind: IssueCycle, CycleMembers: members}
	for _, id := range members {
		if issues[id] == nil {
			issues[id] = issue
		}
	}
}
