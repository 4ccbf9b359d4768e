package stacks

import (
	"context"
	"errors"
	"fmt"

	"stack-manager/core/database"
	"stack-manager/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// requiredColumns are checked by Check to detect a store from an older release.
var requiredColumns = map[string][]string{
	SettingsRecord{}.TableName(): {"id", "version", "default_limit", "batch_enabled", "batch_size", "cleanup_interval_seconds"},
	OverrideRecord{}.TableName(): {"id", "kind", "override_key", "stack_limit"},
	ActorRecord{}.TableName():    {"id", "list", "name"},
}

// Store persists Settings in the settings database.
type Store struct {
	db     *gorm.DB
	seed   reconcile.Settings
	logger *zap.Logger
	sf     singleflight.Group
}

// NewStore creates a Store. seed is written on the first Load of an empty store.
func NewStore(db *gorm.DB, seed reconcile.Settings, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, seed: seed, logger: logger}
}

// Migrate creates or updates the settings tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&SettingsRecord{}, &OverrideRecord{}, &ActorRecord{}); err != nil {
		return fmt.Errorf("failed to migrate settings tables: %w", err)
	}
	return nil
}

// Check returns the required columns missing from each settings table.
// An empty result means the schema is current.
func (s *Store) Check(ctx context.Context) (map[string][]string, error) {
	report := make(map[string][]string)
	for table, columns := range requiredColumns {
		missing, err := database.MissingColumns(s.db.WithContext(ctx), table, columns)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			report[table] = missing
		}
	}
	return report, nil
}

// Load reads the settings. Concurrent callers share a single read.
// An empty store is initialized with the seed; an older version marker is upgraded.
func (s *Store) Load(ctx context.Context) (reconcile.Settings, error) {
	v, err, _ := s.sf.Do("settings", func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return reconcile.Settings{}, err
	}
	return v.(reconcile.Settings).Clone(), nil
}

func (s *Store) load(ctx context.Context) (reconcile.Settings, error) {
	db := s.db.WithContext(ctx)

	var rec SettingsRecord
	err := db.First(&rec, settingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Info("Settings store is empty, writing seed settings")
		if err := s.Save(ctx, s.seed); err != nil {
			return reconcile.Settings{}, err
		}
		return s.seed.Clone(), nil
	}
	if err != nil {
		return reconcile.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	if rec.Version < CurrentVersion {
		s.upgrade(db, rec.Version)
	}

	var overrides []OverrideRecord
	if err := db.Order("id").Find(&overrides).Error; err != nil {
		return reconcile.Settings{}, fmt.Errorf("failed to read overrides: %w", err)
	}

	var actors []ActorRecord
	if err := db.Order("id").Find(&actors).Error; err != nil {
		return reconcile.Settings{}, fmt.Errorf("failed to read actor lists: %w", err)
	}

	settings := reconcile.DefaultSettings()
	settings.DefaultLimit = rec.DefaultLimit
	settings.BatchEnabled = rec.BatchEnabled
	settings.BatchSize = rec.BatchSize
	settings.CleanupInterval = reconcile.SecondsToDuration(rec.CleanupIntervalSeconds)

	for _, o := range overrides {
		key, err := reconcile.ParseKey(o.Kind, o.Key)
		if err == nil && o.Limit <= 0 {
			err = reconcile.ErrInvalidLimit
		}
		if err != nil {
			s.logger.Warn("Skipping invalid override",
				zap.String("kind", o.Kind), zap.String("key", o.Key), zap.Int("limit", o.Limit), zap.Error(err))
			continue
		}
		settings, _ = settings.WithOverride(key, o.Limit)
	}

	for _, a := range actors {
		switch a.List {
		case listAllow:
			settings.Allow = append(settings.Allow, a.Name)
		case listDeny:
			settings.Deny = append(settings.Deny, a.Name)
		default:
			s.logger.Warn("Skipping actor in unknown list", zap.String("list", a.List), zap.String("name", a.Name))
		}
	}

	if err := settings.Validate(); err != nil {
		return reconcile.Settings{}, fmt.Errorf("stored settings are invalid: %w", err)
	}
	return settings, nil
}

// upgrade bumps the version marker. It never rewrites data, and a failure only
// means the upgrade is attempted again on the next load.
func (s *Store) upgrade(db *gorm.DB, from int) {
	err := db.Model(&SettingsRecord{}).
		Where("id = ?", settingsID).
		Update("version", CurrentVersion).Error
	if err != nil {
		s.logger.Warn("Failed to upgrade settings version", zap.Int("from", from), zap.Error(err))
		return
	}
	s.logger.Info("Upgraded settings version", zap.Int("from", from), zap.Int("to", CurrentVersion))
}

// Save replaces the stored settings with settings.
func (s *Store) Save(ctx context.Context, settings reconcile.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	overrides := make([]OverrideRecord, 0, len(settings.ByID)+len(settings.ByName)+len(settings.ByPrefab))
	for _, entry := range settings.Overrides() {
		overrides = append(overrides, OverrideRecord{Kind: string(entry.Kind), Key: entry.Key, Limit: entry.Limit})
	}

	actors := make([]ActorRecord, 0, len(settings.Allow)+len(settings.Deny))
	actors = appendActors(actors, listAllow, settings.Allow)
	actors = appendActors(actors, listDeny, settings.Deny)

	rec := SettingsRecord{
		ID:                     settingsID,
		Version:                CurrentVersion,
		DefaultLimit:           settings.DefaultLimit,
		BatchEnabled:           settings.BatchEnabled,
		BatchSize:              settings.BatchSize,
		CleanupIntervalSeconds: settings.CleanupInterval.Seconds(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("failed to write settings: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&OverrideRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear overrides: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&ActorRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear actor lists: %w", err)
		}
		if len(overrides) > 0 {
			if err := tx.CreateInBatches(overrides, 500).Error; err != nil {
				return fmt.Errorf("failed to write overrides: %w", err)
			}
		}
		if len(actors) > 0 {
			if err := tx.CreateInBatches(actors, 500).Error; err != nil {
				return fmt.Errorf("failed to write actor lists: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("Settings saved",
		zap.Int("default_limit", settings.DefaultLimit),
		zap.Int("overrides", len(overrides)),
		zap.Int("actors", len(actors)),
	)
	return nil
}

// appendActors adds one record per distinct name in names.
func appendActors(dst []ActorRecord, list string, names []string) []ActorRecord {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		dst = append(dst, ActorRecord{List: list, Name: name})
	}
	return dst
}

