package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedSet_AddIsIdempotent(t *testing.T) {
	set := NewTrackedSet()
	g := newGenerator(1, "generator.small")

	assert.True(t, set.Add(g))
	assert.Equal(t, 1, set.Len())

	assert.False(t, set.Add(g))
	assert.Equal(t, 1, set.Len())

	assert.False(t, set.Add(nil))
	assert.Equal(t, 1, set.Len())
}

func TestTrackedSet_RemoveAbsentIsNoop(t *testing.T) {
	set := NewTrackedSet()
	g := newGenerator(1, "generator.small")

	assert.False(t, set.Remove(g))
	assert.False(t, set.Remove(nil))

	set.Add(g)
	assert.True(t, set.Remove(g))
	assert.False(t, set.Remove(g))
	assert.Equal(t, 0, set.Len())
}

func TestTrackedSet_SnapshotIsStable(t *testing.T) {
	set := NewTrackedSet()
	a := newGenerator(1, "generator.small")
	b := newGenerator(2, "generator.small")
	c := newGenerator(3, "generator.large")
	set.Add(a)
	set.Add(b)
	set.Add(c)

	snap := set.Snapshot()
	set.Remove(b)
	set.Add(newGenerator(4, "generator.large"))

	assert.Equal(t, []Object{a, b, c}, snap)
	assert.Equal(t, 3, set.Len())
}

func TestTrackedSet_Indexes(t *testing.T) {
	set := NewTrackedSet()
	a := newGenerator(42, "generator.small")
	b := newGenerator(43, "generator.small")
	c := newGenerator(0, "generator.large")
	set.Add(a)
	set.Add(b)
	set.Add(c)

	obj, ok := set.ByID(42)
	require.True(t, ok)
	assert.Same(t, a, obj)

	_, ok = set.ByID(0)
	assert.False(t, ok, "unassigned ids are never indexed")

	assert.Equal(t, []Object{a, b}, set.ByName("generator.small"))
	assert.Equal(t, []Object{c}, set.ByPrefab("assets/prefabs/generator.large.prefab"))
	assert.Equal(t, []Object{a}, set.Matching(IDKey(42)))
	assert.Empty(t, set.Matching(IDKey(99)))

	set.Remove(a)
	_, ok = set.ByID(42)
	assert.False(t, ok)
	assert.Equal(t, []Object{b}, set.ByName("generator.small"))
}

func TestTrackedSet_RemoveUsesKeysFromAdd(t *testing.T) {
	set := NewTrackedSet()
	g := newGenerator(42, "generator.small")
	set.Add(g)

	// The host renames the entity after it was tracked.
	g.name = "generator.renamed"
	g.id = 77

	set.Remove(g)
	assert.Empty(t, set.ByName("generator.small"))
	_, ok := set.ByID(42)
	assert.False(t, ok)
}

func TestTrackedSet_ReusedIDSurvivesRemoval(t *testing.T) {
	set := NewTrackedSet()
	a := newGenerator(42, "generator.small")
	b := newGenerator(42, "generator.small")
	set.Add(a)
	set.Add(b)

	assert.Equal(t, []Object{a, b}, set.Matching(IDKey(42)))

	set.Remove(b)
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []Object{a}, set.Matching(IDKey(42)))
	obj, ok := set.ByID(42)
	require.True(t, ok)
	assert.Same(t, a, obj)
}

func TestSweep(t *testing.T) {
	set := NewTrackedSet()
	live := newGenerator(1, "generator.small")
	dead := newGenerator(2, "generator.small")
	var typedNil *fakeGenerator
	set.Add(live)
	set.Add(dead)
	set.Add(typedNil)
	dead.dead = true

	removed := Sweep(set)

	assert.Equal(t, 2, removed)
	assert.Equal(t, []Object{live}, set.Snapshot())
}

func TestSweeper_Interval(t *testing.T) {
	set := NewTrackedSet()
	g := newGenerator(1, "generator.small")
	set.Add(g)
	g.dead = true

	t.Run("Disabled", func(t *testing.T) {
		s := NewSweeper(0)
		swept, _ := s.Advance(time.Hour, set)
		assert.False(t, swept)
		assert.Equal(t, 1, set.Len())
	})

	t.Run("Accumulates", func(t *testing.T) {
		s := NewSweeper(time.Second)
		for i := 0; i < 9; i++ {
			swept, _ := s.Advance(100*time.Millisecond, set)
			assert.False(t, swept)
		}
		swept, removed := s.Advance(100*time.Millisecond, set)
		assert.True(t, swept)
		assert.Equal(t, 1, removed)

		// Accumulator resets after a sweep.
		swept, _ = s.Advance(100*time.Millisecond, set)
		assert.False(t, swept)
	})
}
