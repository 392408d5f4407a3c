// Package deps decides, for any task with declared prerequisite tasks,
// whether it is ready: every dependency resolves to an existing, complete
// task and the dependency graph around it is structurally sound (no self
// references, no dangling ids, no cycles). Results are memoized and
// revalidated incrementally as tasks change.
package deps

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Engine keeps per-task readiness correct and cheap to query as tasks are
// created, edited, completed, or deleted. Snapshots flow in through
// ApplySnapshot and OnTaskChanged; readiness is pulled through Validate or
// pushed to subscribers when a cached result changes.
//
// All entry points are serialized by a single mutex, so one Engine instance
// can be shared by a host without external locking. Handlers registered via
// Subscribe run outside that mutex and may call Validate.
//
// Integrity checking is eager: cycles, self-dependencies, and dangling
// references are detected during mutation, not at query time, so subscribers
// see a warning as soon as a bad edit lands.
type Engine struct {
	mu        sync.Mutex
	log       logrus.FieldLogger
	graph     *graph
	issues    map[TaskID]*IntegrityIssue
	cache     *resultCache
	notifier  *notifier
	cacheSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics. Defaults to the logrus
// standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCacheSize bounds the number of memoized validation results.
func WithCacheSize(size int) Option {
	return func(e *Engine) { e.cacheSize = size }
}

// New creates an engine with an empty snapshot.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:       logrus.StandardLogger(),
		cacheSize: DefaultCacheSize,
		notifier:  newNotifier(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.graph = buildGraph(nil)
	e.issues = make(map[TaskID]*IntegrityIssue)
	e.cache = newResultCache(e.cacheSize)
	return e
}

// ApplySnapshot replaces the task set with a full snapshot. The graph is
// rebuilt, integrity is re-checked over the whole node set, and only the
// affected cache entries are recomputed. Subscribers are notified for every
// task whose result changed; applying an identical snapshot twice notifies
// nobody.
func (e *Engine) ApplySnapshot(records []TaskRecord) {
	e.mu.Lock()
	changed := e.applyLocked(records)
	e.mu.Unlock()
	e.notifier.dispatch(changed)
}

// OnTaskChanged applies a targeted delta for one task, inserting it if it is
// not yet known. A pure completion flip stays O(1 + dependents); editing the
// dependency list forces a full integrity re-check because cycle topology can
// shift when any edge changes.
func (e *Engine) OnTaskChanged(id TaskID, complete bool, dependencyIDs []TaskID) {
	e.mu.Lock()

	newDeps := dedupeIDs(dependencyIDs)
	if node, ok := e.graph.node(id); ok && equalIDs(node.DependencyIDs, newDeps) {
		if node.Complete == complete {
			e.mu.Unlock()
			return
		}
		node.Complete = complete
		affected := append([]TaskID{id}, e.graph.dependentsOf(id)...)
		changed := e.recomputeLocked(affected)
		e.mu.Unlock()
		e.notifier.dispatch(changed)
		return
	}

	records := e.recordsLocked()
	replaced := false
	for i := range records {
		if records[i].ID == id {
			records[i] = TaskRecord{ID: id, Complete: complete, DependencyIDs: newDeps}
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, TaskRecord{ID: id, Complete: complete, DependencyIDs: newDeps})
	}
	changed := e.applyLocked(records)
	e.mu.Unlock()
	e.notifier.dispatch(changed)
}

// Validate returns the cached validation result for a task, computing it on
// first query. Unknown ids fail with NotFoundError rather than a default
// "valid" result.
func (e *Engine) Validate(id TaskID) (ValidationResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, ok := e.graph.node(id)
	if !ok {
		return ValidationResult{}, &NotFoundError{TaskID: id}
	}

	if entry, ok := e.cache.get(id); ok {
		if e.entryHealthyLocked(entry) {
			return entry.result, nil
		}
		// A cached result referencing tasks no longer in the graph means an
		// invalidation was missed. Self-heal: evict and recompute.
		e.log.WithField("task", id).Warn("stale validation cache entry, recomputing")
		e.cache.evict(id)
	}

	entry := e.computeLocked(node)
	e.cache.put(id, entry)
	return entry.result, nil
}

// Subscribe registers a handler for one task's result changes. An empty id
// behaves like SubscribeAll.
func (e *Engine) Subscribe(id TaskID, fn Handler) Subscription {
	return e.notifier.subscribe(id, fn)
}

// SubscribeAll registers a handler for every changed task.
func (e *Engine) SubscribeAll(fn Handler) Subscription {
	return e.notifier.subscribe(subscribeAllTasks, fn)
}

// Unsubscribe removes a handler. Safe to call repeatedly or with a handle
// that was never issued.
func (e *Engine) Unsubscribe(sub Subscription) {
	e.notifier.unsubscribe(sub)
}

// TaskIDs returns all known task ids in lexicographic order.
func (e *Engine) TaskIDs() []TaskID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.ids()
}

// Stats reports graph and cache counters.
type Stats struct {
	Tasks         int
	Edges         int
	CachedResults int
	CacheHits     uint64
	CacheMisses   uint64
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Tasks:         e.graph.size(),
		Edges:         e.graph.edgeCount,
		CachedResults: e.cache.len(),
		CacheHits:     e.cache.hits,
		CacheMisses:   e.cache.misses,
	}
}

// applyLocked swaps in a rebuilt graph, diffs it against the previous one,
// and recomputes exactly the affected subset. Returns the results that
// changed against their previously cached values.
func (e *Engine) applyLocked(records []TaskRecord) []ValidationResult {
	old := e.graph
	oldIssues := e.issues

	g := buildGraph(records)
	issues := checkIntegrity(g)

	affected := make(map[TaskID]bool)
	markAffected := func(id TaskID) {
		affected[id] = true
		for _, dep := range old.dependentsOf(id) {
			affected[dep] = true
		}
		for _, dep := range g.dependentsOf(id) {
			affected[dep] = true
		}
	}

	for id, node := range g.nodes {
		prev, ok := old.nodes[id]
		if !ok || prev.Complete != node.Complete || !equalIDs(prev.DependencyIDs, node.DependencyIDs) {
			markAffected(id)
		}
	}
	for id := range old.nodes {
		if _, ok := g.nodes[id]; !ok {
			markAffected(id)
		}
	}
	// Cycle topology can shift for tasks whose own record did not change.
	for id := range g.nodes {
		if !issues[id].Equal(oldIssues[id]) {
			affected[id] = true
		}
	}

	e.graph = g
	e.issues = issues

	ids := make([]TaskID, 0, len(affected))
	for id := range affected {
		ids = append(ids, id)
	}
	sortIDs(ids)

	changed := e.recomputeLocked(ids)
	e.log.WithFields(logrus.Fields{
		"tasks":    g.size(),
		"edges":    g.edgeCount,
		"affected": len(ids),
		"changed":  len(changed),
	}).Debug("snapshot applied")
	return changed
}

// recomputeLocked refreshes cache entries for the given ids. Ids no longer in
// the graph are evicted. A result is reported as changed only when a previous
// cached value existed and differs; first computations never notify.
func (e *Engine) recomputeLocked(ids []TaskID) []ValidationResult {
	var changed []ValidationResult
	for _, id := range ids {
		node, ok := e.graph.node(id)
		if !ok {
			e.cache.evict(id)
			continue
		}
		prev, had := e.cache.peek(id)
		entry := e.computeLocked(node)
		e.cache.put(id, entry)
		if had && !prev.result.Equal(entry.result) {
			changed = append(changed, entry.result)
		}
	}
	return changed
}

// computeLocked evaluates readiness from direct dependencies only. Dangling
// ids and self references are excluded from the incomplete list; they are
// already reported on the integrity issue.
func (e *Engine) computeLocked(node *TaskNode) cacheEntry {
	var incomplete, resolved []TaskID
	for _, dep := range node.DependencyIDs {
		if dep == node.ID {
			continue
		}
		depNode, ok := e.graph.node(dep)
		if !ok {
			continue
		}
		resolved = append(resolved, dep)
		if !depNode.Complete {
			incomplete = append(incomplete, dep)
		}
	}

	issue := e.issues[node.ID]
	return cacheEntry{
		result: ValidationResult{
			TaskID:                  node.ID,
			Valid:                   issue == nil && len(incomplete) == 0,
			IncompleteDependencyIDs: incomplete,
			Issue:                   issue,
		},
		dependsOn: resolved,
	}
}

func (e *Engine) entryHealthyLocked(entry cacheEntry) bool {
	for _, dep := range entry.dependsOn {
		if _, ok := e.graph.node(dep); !ok {
			return false
		}
	}
	return true
}

func (e *Engine) recordsLocked() []TaskRecord {
	records := make([]TaskRecord, 0, e.graph.size())
	for _, id := range e.graph.ids() {
		node := e.graph.nodes[id]
		records = append(records, TaskRecord{
			ID:            node.ID,
			Complete:      node.Complete,
			DependencyIDs: node.DependencyIDs,
		})
	}
	return records
}
