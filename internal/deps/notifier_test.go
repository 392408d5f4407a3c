package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PerTaskDelivery(t *testing.T) {
	n := newNotifier()

	var got []ValidationResult
	n.subscribe("a", func(res ValidationResult) {
		got = append(got, res)
	})

	n.dispatch([]ValidationResult{
		{TaskID: "a", Valid: true},
		{TaskID: "b", Valid: false},
	})

	require.Len(t, got, 1)
	assert.Equal(t, TaskID("a"), got[0].TaskID)
}

func TestNotifier_AllTasksDelivery(t *testing.T) {
	n := newNotifier()

	var got []TaskID
	n.subscribe(subscribeAllTasks, func(res ValidationResult) {
		got = append(got, res.TaskID)
	})

	n.dispatch([]ValidationResult{
		{TaskID: "a"},
		{TaskID: "b"},
		{TaskID: "a"},
	})

	// Per-task order follows recomputation order
	assert.Equal(t, []TaskID{"a", "b", "a"}, got)
}

func TestNotifier_UnsubscribeIdempotent(t *testing.T) {
	n := newNotifier()

	calls := 0
	sub := n.subscribe("a", func(ValidationResult) { calls++ })

	n.dispatch([]ValidationResult{{TaskID: "a"}})
	assert.Equal(t, 1, calls)

	n.unsubscribe(sub)
	n.unsubscribe(sub)
	n.unsubscribe(Subscription("never-issued"))

	n.dispatch([]ValidationResult{{TaskID: "a"}})
	assert.Equal(t, 1, calls)
}

func TestNotifier_IndependentSubscriptions(t *testing.T) {
	n := newNotifier()

	first, second := 0, 0
	subFirst := n.subscribe("a", func(ValidationResult) { first++ })
	n.subscribe("a", func(ValidationResult) { second++ })

	n.unsubscribe(subFirst)
	n.dispatch([]ValidationResult{{TaskID: "a"}})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestNotifier_UnsubscribeDuringDispatch(t *testing.T) {
	n := newNotifier()

	var sub Subscription
	calls := 0
	sub = n.subscribe("a", func(ValidationResult) {
		calls++
		n.unsubscribe(sub)
	})

	n.dispatch([]ValidationResult{{TaskID: "a"}})
	n.dispatch([]ValidationResult{{TaskID: "a"}})

	assert.Equal(t, 1, calls)
}
