package stacks_test

import (
	"context"
	"testing"
	"time"

	"stack-manager/core/database"
	"stack-manager/core/reconcile"
	"stack-manager/feature/stacks"
	"stack-manager/feature/world"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func newTestStore(t *testing.T, db *gorm.DB, seed reconcile.Settings) *stacks.Store {
	t.Helper()
	store := stacks.NewStore(db, seed, zap.NewNop())
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// unbatched returns default settings that apply spawns immediately.
func unbatched(mutate ...func(*reconcile.Settings)) reconcile.Settings {
	s := reconcile.DefaultSettings()
	s.BatchEnabled = false
	s.CleanupInterval = 0
	for _, fn := range mutate {
		fn(&s)
	}
	return s
}

type fixture struct {
	svc   *stacks.Service
	store *stacks.Store
	db    *gorm.DB
	world *world.World
	loop  *reconcile.Loop
}

// newFixture wires a store, a running loop and a world the way the start command does.
func newFixture(t *testing.T, seed reconcile.Settings, exporter *stacks.Exporter) *fixture {
	t.Helper()
	ctx := context.Background()

	db := newTestDB(t)
	store := newTestStore(t, db, seed)
	settings, err := store.Load(ctx)
	require.NoError(t, err)

	engine := reconcile.NewEngine(settings, zap.NewNop())
	loop := reconcile.NewLoop(engine, 5*time.Millisecond, zap.NewNop())

	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	go func() { _ = loop.Run(runCtx) }()

	w := world.New(zap.NewNop())
	w.SetListener(loop)

	return &fixture{
		svc:   stacks.NewService(loop, store, exporter, zap.NewNop()),
		store: store,
		db:    db,
		world: w,
		loop:  loop,
	}
}

func (f *fixture) spawn(t *testing.T, id uint64, name string, amounts ...int) *world.Generator {
	t.Helper()
	g, err := f.world.Spawn(world.SpawnSpec{NetworkID: id, Name: name, Amounts: amounts})
	require.NoError(t, err)
	return g
}

// sync waits until every notification posted so far has been processed.
func (f *fixture) sync(t *testing.T) {
	t.Helper()
	require.NoError(t, f.loop.Do(context.Background(), func(*reconcile.Engine) {}))
}
