package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/pufferfish/pkg/ecs"
)

func TestSchedulerFiresAfterDelay(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Invoke(1, "SpawnSpines", 1.25, func() { fired++ })

	s.Update(1.0)
	assert.Zero(t, fired)
	assert.Equal(t, []string{"SpawnSpines"}, s.Pending(1))

	s.Update(0.25)
	assert.Equal(t, 1, fired)
	assert.Empty(t, s.Pending(1))

	// 单次任务不会重复触发
	s.Update(10)
	assert.Equal(t, 1, fired)
	assert.Zero(t, s.Len())
}

func TestSchedulerOrdersByFireTimeThenInsertion(t *testing.T) {
	s := NewScheduler()
	var order []string
	record := func(name string) func() { return func() { order = append(order, name) } }

	s.Invoke(1, "late", 0.5, record("late"))
	s.Invoke(2, "first-at-0.1", 0.1, record("first-at-0.1"))
	s.Invoke(3, "second-at-0.1", 0.1, record("second-at-0.1"))

	s.Update(1)
	assert.Equal(t, []string{"first-at-0.1", "second-at-0.1", "late"}, order)
}

func TestSchedulerRunsChainedDueTasksInSameUpdate(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.Invoke(1, "SpawnSpines", 1.25, func() {
		order = append(order, "SpawnSpines")
		s.Invoke(1, "PlaySound", 0.1, func() { order = append(order, "PlaySound") })
	})

	// 一个大步长同时覆盖两个任务的触发时间
	s.Update(2)
	assert.Equal(t, []string{"SpawnSpines", "PlaySound"}, order)
}

func TestSchedulerChainedTaskWaitsItsOwnDelay(t *testing.T) {
	s := NewScheduler()
	played := false

	s.Invoke(1, "SpawnSpines", 1.25, func() {
		s.Invoke(1, "PlaySound", 0.1, func() { played = true })
	})

	s.Update(1.3) // 1.25 触发，PlaySound 应在 1.35 触发
	assert.False(t, played)
	assert.Equal(t, []string{"PlaySound"}, s.Pending(1))

	s.Update(0.1)
	assert.True(t, played)
}

func TestSchedulerCancelOwner(t *testing.T) {
	s := NewScheduler()
	fired := map[ecs.EntityID]int{}

	s.Invoke(1, "a", 0.5, func() { fired[1]++ })
	s.Invoke(1, "b", 1.0, func() { fired[1]++ })
	s.Invoke(2, "c", 0.5, func() { fired[2]++ })

	require.Equal(t, 2, s.CancelOwner(1))
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, s.CancelOwner(1), "second cancel is a no-op")

	s.Update(2)
	assert.Zero(t, fired[1])
	assert.Equal(t, 1, fired[2])
}

func TestSchedulerNegativeDelayAndNilFn(t *testing.T) {
	s := NewScheduler()
	fired := false

	s.Invoke(1, "nil", 0, nil)
	assert.Zero(t, s.Len())

	s.Invoke(1, "now", -3, func() { fired = true })
	s.Update(0)
	assert.True(t, fired)
}

func TestOwnerScheduler(t *testing.T) {
	s := NewScheduler()
	handle := s.ForOwner(7)
	handle.Invoke("PlaySound", 0.1, func() {})

	assert.Equal(t, []string{"PlaySound"}, s.Pending(7))
	assert.Empty(t, s.Pending(8))
	assert.InDelta(t, 0, s.Now(), 1e-12)
}
