package world_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"stack-manager/core/reconcile"
	"stack-manager/feature/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu        sync.Mutex
	spawned   []reconcile.Object
	destroyed []reconcile.Object
}

func (r *recorder) Spawned(obj reconcile.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spawned = append(r.spawned, obj)
}

func (r *recorder) Destroyed(obj reconcile.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyed = append(r.destroyed, obj)
}

func TestWorld_SpawnNotifiesListener(t *testing.T) {
	w := world.New(zap.NewNop())
	rec := &recorder{}
	w.SetListener(rec)

	g, err := w.Spawn(world.SpawnSpec{NetworkID: 42, Name: "generator.small", Amounts: []int{5000}})
	require.NoError(t, err)

	assert.Equal(t, []reconcile.Object{g}, rec.spawned)
	assert.Equal(t, "assets/prefabs/deployable/generator.small.prefab", g.PrefabPath())
	id, ok := g.NetworkID()
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
	assert.True(t, g.IsAlive())
}

func TestWorld_UnassignedNetworkID(t *testing.T) {
	w := world.New(nil)
	g, err := w.Spawn(world.SpawnSpec{Name: "generator.small"})
	require.NoError(t, err)

	_, ok := g.NetworkID()
	assert.False(t, ok)
}

func TestWorld_SpawnRejectsInvalidSpec(t *testing.T) {
	w := world.New(nil)

	_, err := w.Spawn(world.SpawnSpec{Name: "  "})
	assert.ErrorIs(t, err, world.ErrInvalidSpawn)

	_, err = w.Spawn(world.SpawnSpec{Name: "generator.small", Amounts: []int{-1}})
	assert.ErrorIs(t, err, world.ErrInvalidSpawn)
	assert.Equal(t, 0, w.Len())
}

func TestWorld_Destroy(t *testing.T) {
	w := world.New(nil)
	rec := &recorder{}
	w.SetListener(rec)

	loud, _ := w.Spawn(world.SpawnSpec{Name: "a"})
	silent, _ := w.Spawn(world.SpawnSpec{Name: "b"})

	require.NoError(t, w.Destroy(loud.Handle(), true))
	require.NoError(t, w.Destroy(silent.Handle(), false))

	assert.False(t, loud.IsAlive())
	assert.False(t, silent.IsAlive())
	assert.Equal(t, []reconcile.Object{loud}, rec.destroyed)
	assert.Equal(t, 0, w.Len())

	assert.ErrorIs(t, w.Destroy(loud.Handle(), true), world.ErrNotFound)

	_, err := silent.Inventory()
	assert.ErrorIs(t, err, world.ErrDestroyed)
}

func TestWorld_ScanReturnsLiveInSpawnOrder(t *testing.T) {
	w := world.New(nil)
	a, _ := w.Spawn(world.SpawnSpec{Name: "a"})
	b, _ := w.Spawn(world.SpawnSpec{Name: "b"})
	c, _ := w.Spawn(world.SpawnSpec{Name: "c"})
	require.NoError(t, w.Destroy(b.Handle(), false))

	assert.Equal(t, []reconcile.Object{a, c}, w.Scan())
}

func TestGenerator_ApplyClampsInventory(t *testing.T) {
	w := world.New(nil)
	g, _ := w.Spawn(world.SpawnSpec{NetworkID: 7, Name: "generator.small", Amounts: []int{5000, 20}})

	res := reconcile.ApplyLimit(g, 1000)

	require.True(t, res.OK())
	assert.Equal(t, 1, res.Clamped)
	view := g.View()
	assert.Equal(t, 1000, view.MaxStack)
	assert.Equal(t, []int{1000, 20}, view.Amounts)
}

func TestGenerator_ApplyAfterDestroyFails(t *testing.T) {
	w := world.New(nil)
	g, _ := w.Spawn(world.SpawnSpec{Name: "generator.small", Amounts: []int{5000}})
	require.NoError(t, w.Destroy(g.Handle(), false))

	res := reconcile.ApplyLimit(g, 1000)

	assert.False(t, res.OK())
	assert.Equal(t, []int{5000}, g.View().Amounts)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	seed := `generators:
  - network_id: 42
    name: generator.small
    amounts: [5000, 120]
  - name: generator.large
    prefab: assets/custom/large.prefab
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	specs, err := world.LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, uint64(42), specs[0].NetworkID)
	assert.Equal(t, []int{5000, 120}, specs[0].Amounts)

	w := world.New(nil)
	n, err := w.Populate(specs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "assets/custom/large.prefab", w.Generators()[1].PrefabPath())
}

func TestLoadSeed_InvalidGenerator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generators:\n  - amounts: [1]\n"), 0o600))

	_, err := world.LoadSeed(path)
	assert.ErrorIs(t, err, world.ErrInvalidSpawn)
}
