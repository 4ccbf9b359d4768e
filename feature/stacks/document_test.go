package stacks_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stack-manager/core/reconcile"
	"stack-manager/feature/stacks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `version: 2
default_limit: 800
batch_enabled: false
cleanup_interval_seconds: 30
overrides:
  ids:
    42: 200
  names:
    generator.small: 300
  prefabs:
    assets/prefabs/deployable/generator.large.prefab: 400
allow: [Bob]
deny: [Alice]
`

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	doc, err := stacks.LoadSeedFile(path)
	require.NoError(t, err)

	settings, err := doc.MergeInto(reconcile.DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 800, settings.DefaultLimit)
	assert.False(t, settings.BatchEnabled)
	assert.Equal(t, reconcile.DefaultBatchSize, settings.BatchSize)
	assert.Equal(t, 30*time.Second, settings.CleanupInterval)
	assert.Equal(t, map[uint64]int{42: 200}, settings.ByID)
	assert.Equal(t, map[string]int{"generator.small": 300}, settings.ByName)
	assert.Equal(t, 400, settings.ByPrefab["assets/prefabs/deployable/generator.large.prefab"])
	assert.Equal(t, []string{"Bob"}, settings.Allow)
	assert.Equal(t, []string{"Alice"}, settings.Deny)
}

func TestDecodeYAML_RejectsUnknownFields(t *testing.T) {
	_, err := stacks.DecodeYAML(strings.NewReader("default_limt: 10\n"))
	assert.Error(t, err)
}

func TestDecodeYAML_Empty(t *testing.T) {
	doc, err := stacks.DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, stacks.Document{}, doc)
}

func TestMergeInto_InvalidOverrideLeavesBase(t *testing.T) {
	base := reconcile.DefaultSettings()
	doc := stacks.Document{Overrides: stacks.OverrideTables{IDs: map[uint64]int{0: 10}}}

	got, err := doc.MergeInto(base)
	assert.ErrorIs(t, err, reconcile.ErrInvalidKey)
	assert.Equal(t, base, got)
}

func TestMergeInto_KeepsExistingEntries(t *testing.T) {
	base, err := reconcile.DefaultSettings().WithOverride(reconcile.NameKey("generator.small"), 10)
	require.NoError(t, err)
	base.Deny = []string{"Alice"}

	doc := stacks.Document{
		Overrides: stacks.OverrideTables{Names: map[string]int{"generator.large": 20}},
		Deny:      []string{"Alice", "Mallory"},
	}
	got, err := doc.MergeInto(base)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"generator.small": 10, "generator.large": 20}, got.ByName)
	assert.Equal(t, []string{"Alice", "Mallory"}, got.Deny)
}

func TestDocumentFrom(t *testing.T) {
	settings := reconcile.DefaultSettings()
	settings.Allow = []string{"Carol", "Bob"}

	doc := stacks.DocumentFrom(settings)

	assert.Equal(t, stacks.CurrentVersion, doc.Version)
	assert.Equal(t, []string{"Bob", "Carol"}, doc.Allow)
	require.NotNil(t, doc.BatchEnabled)
	assert.True(t, *doc.BatchEnabled)
	require.NotNil(t, doc.CleanupIntervalSeconds)
	assert.Equal(t, 60.0, *doc.CleanupIntervalSeconds)

	back, err := doc.MergeInto(reconcile.Settings{DefaultLimit: 1, BatchSize: 1})
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultLimit, back.DefaultLimit)
	assert.Equal(t, settings.CleanupInterval, back.CleanupInterval)
}
