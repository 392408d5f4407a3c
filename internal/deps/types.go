package deps

// TaskID uniquely identifies a task within a snapshot.
type TaskID string

// TaskRecord is the read-only view of a task the engine consumes from the
// task store: identity, completion flag, and the dependency ids in the order
// the user declared them.
type TaskRecord struct {
	ID            TaskID
	Complete      bool
	DependencyIDs []TaskID
}

// TaskNode is a node in the dependency graph, built fresh from each snapshot.
// DependencyIDs is deduplicated but keeps the declared order.
type TaskNode struct {
	ID            TaskID
	Complete      bool
	DependencyIDs []TaskID
}

// IssueKind classifies a structural defect in the dependency graph.
type IssueKind int

const (
	// IssueSelfDependency indicates a task lists its own id as a dependency
	IssueSelfDependency IssueKind = iota
	// IssueDanglingReference indicates a dependency id not present in the snapshot
	IssueDanglingReference
	// IssueCycle indicates the task participates in a dependency cycle
	IssueCycle
)

// String returns a string representation of the IssueKind
func (k IssueKind) String() string {
	switch k {
	case IssueSelfDependency:
		return "self-dependency"
	case IssueDanglingReference:
		return "dangling-reference"
	case IssueCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// IntegrityIssue describes a structural defect found by the integrity check.
// MissingID is set for dangling references, CycleMembers for cycles.
type IntegrityIssue struct {
	Kind         IssueKind
	MissingID    TaskID
	CycleMembers []TaskID
}

// Equal reports whether two issues describe the same defect.
func (i *IntegrityIssue) Equal(other *IntegrityIssue) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Kind != other.Kind || i.MissingID != other.MissingID {
		return false
	}
	return equalIDs(i.CycleMembers, other.CycleMembers)
}

// ValidationResult reports whether a task is ready: no integrity issue and
// every declared dependency resolved to a complete task.
type ValidationResult struct {
	TaskID TaskID
	Valid  bool
	// IncompleteDependencyIDs lists the resolvable dependencies that are not
	// yet complete, in declared order. Dangling ids are reported on Issue
	// instead, never here.
	IncompleteDependencyIDs []TaskID
	Issue                   *IntegrityIssue
}

// Equal compares the full result value, not just the Valid flag, so ordering
// or content changes in the incomplete list count as a change.
func (r ValidationResult) Equal(other ValidationResult) bool {
	if r.TaskID != other.TaskID || r.Valid != other.Valid {
		return false
	}
	if !equalIDs(r.IncompleteDependencyIDs, other.IncompleteDependencyIDs) {
		return false
	}
	return r.Issue.Equal(other.Issue)
}

func equalIDs(a, b []TaskID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
