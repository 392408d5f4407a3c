package deps

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives a task's recomputed validation result whenever it differs
// from the previously cached value.
type Handler func(ValidationResult)

// Subscription identifies a registered handler. The zero value is never
// issued, so it is safe to keep around after Unsubscribe.
type Subscription string

// subscribeAllTasks is the registration scope for dashboard-style subscribers
// interested in every changed task.
const subscribeAllTasks = TaskID("")

// notifier fans validation-result changes out to registered handlers. It has
// its own lock so handlers may subscribe or unsubscribe from inside a
// callback, and so the engine can dispatch outside its mutation lock.
type notifier struct {
	mu     sync.Mutex
	byTask map[TaskID]map[Subscription]Handler
	scope  map[Subscription]TaskID
}

func newNotifier() *notifier {
	return &notifier{
		byTask: make(map[TaskID]map[Subscription]Handler),
		scope:  make(map[Subscription]TaskID),
	}
}

func (n *notifier) subscribe(id TaskID, fn Handler) Subscription {
	sub := Subscription(uuid.NewString())
	n.mu.Lock()
	defer n.mu.Unlock()

	handlers, ok := n.byTask[id]
	if !ok {
		handlers = make(map[Subscription]Handler)
		n.byTask[id] = handlers
	}
	handlers[sub] = fn
	n.scope[sub] = id
	return sub
}

// unsubscribe is idempotent; unknown or already-removed handles are a no-op.
func (n *notifier) unsubscribe(sub Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id, ok := n.scope[sub]
	if !ok {
		return
	}
	delete(n.scope, sub)
	if handlers, ok := n.byTask[id]; ok {
		delete(handlers, sub)
		if len(handlers) == 0 {
			delete(n.byTask, id)
		}
	}
}

// dispatch delivers results to per-task and all-task subscribers. Within a
// single task id results arrive in recomputation order; no ordering is
// promised across different ids. Handlers run outside the notifier lock.
func (n *notifier) dispatch(results []ValidationResult) {
	for _, res := range results {
		for _, fn := range n.handlersFor(res.TaskID) {
			fn(res)
		}
	}
}

func (n *notifier) handlersFor(id TaskID) []Handler {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Handler, 0, len(n.byTask[id])+len(n.byTask[subscribeAllTasks]))
	for _, fn := range n.byTask[id] {
		out = append(out, fn)
	}
	for _, fn := range n.byTask[subscribeAllTasks] {
		out = append(out, fn)
	}
	return out
}
