package stacks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stack-manager/core/reconcile"
	"stack-manager/feature/stacks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestStore_LoadSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed := unbatched(func(s *reconcile.Settings) { s.DefaultLimit = 750 })
	store := newTestStore(t, db, seed)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	var rec stacks.SettingsRecord
	require.NoError(t, db.First(&rec).Error)
	assert.Equal(t, stacks.CurrentVersion, rec.Version)
	assert.Equal(t, 750, rec.DefaultLimit)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := newTestStore(t, db, reconcile.DefaultSettings())

	want := reconcile.DefaultSettings()
	want.DefaultLimit = 500
	want.BatchEnabled = false
	want.BatchSize = 5
	want.CleanupInterval = 2500 * time.Millisecond
	want.ByID[42] = 200
	want.ByName["generator.small"] = 300
	want.ByPrefab["assets/prefabs/deployable/generator.large.prefab"] = 400
	want.Allow = []string{"Bob", "Carol"}
	want.Deny = []string{"Alice"}

	require.NoError(t, store.Save(ctx, want))

	got, err := stacks.NewStore(db, reconcile.DefaultSettings(), zap.NewNop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveReplacesOverrides(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newTestDB(t), reconcile.DefaultSettings())

	first, err := reconcile.DefaultSettings().WithOverride(reconcile.IDKey(42), 200)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, reconcile.DefaultSettings()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.ByID)
}

func TestStore_SaveRejectsInvalidSettings(t *testing.T) {
	store := newTestStore(t, newTestDB(t), reconcile.DefaultSettings())

	bad := reconcile.DefaultSettings()
	bad.DefaultLimit = 0
	assert.ErrorIs(t, store.Save(context.Background(), bad), reconcile.ErrInvalidLimit)
}

func TestStore_UpgradesOlderVersion(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := newTestStore(t, db, reconcile.DefaultSettings())

	require.NoError(t, db.Create(&stacks.SettingsRecord{
		ID:                     1,
		Version:                1,
		DefaultLimit:           500,
		BatchEnabled:           true,
		BatchSize:              20,
		CleanupIntervalSeconds: 60,
	}).Error)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500, got.DefaultLimit)

	var rec stacks.SettingsRecord
	require.NoError(t, db.First(&rec, 1).Error)
	assert.Equal(t, stacks.CurrentVersion, rec.Version)
	assert.Equal(t, 500, rec.DefaultLimit, "the upgrade only bumps the version marker")
}

func TestStore_SkipsInvalidRows(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := newTestStore(t, db, reconcile.DefaultSettings())
	require.NoError(t, store.Save(ctx, reconcile.DefaultSettings()))

	require.NoError(t, db.Create([]stacks.OverrideRecord{
		{Kind: "id", Key: "0", Limit: 5},
		{Kind: "id", Key: "not-a-number", Limit: 5},
		{Kind: "colour", Key: "red", Limit: 5},
		{Kind: "name", Key: "broken", Limit: -1},
		{Kind: "name", Key: "generator.small", Limit: 10},
	}).Error)
	require.NoError(t, db.Create(&stacks.ActorRecord{List: "maybe", Name: "Bob"}).Error)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.ByID)
	assert.Equal(t, map[string]int{"generator.small": 10}, got.ByName)
	assert.Empty(t, got.Allow)
	assert.Empty(t, got.Deny)
}

func TestStore_Check(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := stacks.NewStore(db, reconcile.DefaultSettings(), nil)

	report, err := store.Check(ctx)
	require.NoError(t, err)
	assert.Len(t, report, 3)
	assert.Contains(t, report["stack_overrides"], "override_key")

	require.NoError(t, store.Migrate(ctx))
	report, err = store.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, report)
}

func newMockStore(t *testing.T) (*stacks.Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return stacks.NewStore(db, reconcile.DefaultSettings(), zap.NewNop()), mock
}

func TestStore_LoadQueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `stack_settings`").WillReturnError(errors.New("connection refused"))

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read settings")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `stack_settings`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), reconcile.DefaultSettings())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write settings")
	assert.NoError(t, mock.ExpectationsWereMet())
}
