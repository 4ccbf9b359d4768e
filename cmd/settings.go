package cmd

import (
	"context"
	"fmt"
	"sort"

	"stack-manager/core/config"
	"stack-manager/core/database"
	"stack-manager/core/logger"
	"stack-manager/core/reconcile"
	"stack-manager/core/storage"
	"stack-manager/feature/stacks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// settingsCmd is the parent command for offline settings store operations.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the persisted stack settings",
	Long: `Operate directly on the settings database and the snapshot bucket.
A running server picks up changes made here after "stack-manager reload".`,
}

var settingsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the settings tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSettings(cmd.Context())
		if err != nil {
			return err
		}
		if err := env.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		env.logger.Info("Settings tables migrated")
		return nil
	},
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report settings columns missing from the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openSettings(cmd.Context())
		if err != nil {
			return err
		}

		report, err := env.store.Check(cmd.Context())
		if err != nil {
			return err
		}
		if len(report) == 0 {
			env.logger.Info("Settings schema is up to date")
			return nil
		}

		tables := make([]string, 0, len(report))
		for table := range report {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			env.logger.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", report[table]))
		}
		return fmt.Errorf("%d settings tables are out of date, run \"stack-manager settings migrate\"", len(report))
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Merge a YAML settings file into the store",
	Long: `Merges a YAML settings document into the stored settings. Overrides and
actor names in the file are added; scalar fields present in the file replace
the stored value.

Example file:
  default_limit: 1000
  overrides:
    ids:
      42: 200
    names:
      generator.small: 500
    prefabs:
      assets/prefabs/deployable/generator.large.prefab: 2000
  deny: [Alice]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := stacks.LoadSeedFile(args[0])
		if err != nil {
			return err
		}

		env, err := openSettings(ctx)
		if err != nil {
			return err
		}
		if err := env.store.Migrate(ctx); err != nil {
			return err
		}

		current, err := env.store.Load(ctx)
		if err != nil {
			return err
		}
		next, err := doc.MergeInto(current)
		if err != nil {
			return fmt.Errorf("invalid settings file: %w", err)
		}

		env.logger.Info("Import plan",
			zap.Int("default_limit", next.DefaultLimit),
			zap.Int("overrides_before", len(current.Overrides())),
			zap.Int("overrides_after", len(next.Overrides())),
		)
		if !confirmReplace("settings") {
			env.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		if err := env.store.Save(ctx, next); err != nil {
			return err
		}
		env.export(ctx, next)
		env.logger.Info("Settings imported", zap.String("file", args[0]))
		return nil
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored settings to the snapshot bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := openSettings(ctx)
		if err != nil {
			return err
		}
		if env.exporter == nil {
			return fmt.Errorf("storage is disabled, set STORAGE_ENABLED=true")
		}

		settings, err := env.store.Load(ctx)
		if err != nil {
			return err
		}
		if err := env.exporter.Export(ctx, settings); err != nil {
			return err
		}
		env.logger.Info("Settings snapshot written", zap.String("object", stacks.SnapshotObject))
		return nil
	},
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the stored settings with the last snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := openSettings(ctx)
		if err != nil {
			return err
		}
		if env.exporter == nil {
			return fmt.Errorf("storage is disabled, set STORAGE_ENABLED=true")
		}

		doc, err := env.exporter.Fetch(ctx)
		if err != nil {
			return err
		}
		restored, err := doc.MergeInto(env.seed)
		if err != nil {
			return fmt.Errorf("invalid snapshot: %w", err)
		}

		if !confirmReplace("settings") {
			env.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		if err := env.store.Migrate(ctx); err != nil {
			return err
		}
		if err := env.store.Save(ctx, restored); err != nil {
			return err
		}
		env.logger.Info("Settings restored from snapshot",
			zap.Int("default_limit", restored.DefaultLimit),
			zap.Int("overrides", len(restored.Overrides())),
		)
		return nil
	},
}

// settingsEnv bundles what the offline settings commands need.
type settingsEnv struct {
	store    *stacks.Store
	exporter *stacks.Exporter
	seed     reconcile.Settings
	logger   *zap.Logger
}

func (e *settingsEnv) export(ctx context.Context, settings reconcile.Settings) {
	if e.exporter == nil {
		return
	}
	if err := e.exporter.Export(ctx, settings); err != nil {
		e.logger.Warn("Settings snapshot export failed", zap.Error(err))
	}
}

func openSettings(ctx context.Context) (*settingsEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	seed := cfg.Reconcile.SeedSettings()
	env := &settingsEnv{
		store:  stacks.NewStore(db, seed, l),
		seed:   seed,
		logger: l,
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		env.exporter = stacks.NewExporter(client, cfg.Storage.Bucket)
	}
	return env, nil
}

func init() {
	settingsImportCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	settingsRestoreCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")

	settingsCmd.AddCommand(settingsMigrateCmd, settingsCheckCmd, settingsImportCmd, settingsExportCmd, settingsRestoreCmd)
	RootCmd.AddCommand(settingsCmd)
}
