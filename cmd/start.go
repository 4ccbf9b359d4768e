package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stack-manager/core/config"
	"stack-manager/core/database"
	"stack-manager/core/loader"
	"stack-manager/core/logger"
	"stack-manager/core/middleware/auth"
	"stack-manager/core/middleware/rayid"
	"stack-manager/core/reconcile"
	"stack-manager/core/storage"

	"stack-manager/feature/stacks"
	"stack-manager/feature/world"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stack-manager/docs/swagger"
)

// worldSeed is the optional YAML file populating the world before the startup scan.
var worldSeed string

// @title Stack Manager API
// @version 1.0
// @description API for managing generator inventory stack sizes.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stack manager server",
	Long: `Loads the persisted settings, starts the reconcile loop, scans the world for
existing generators and serves the HTTP command surface.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 3. Connect to the settings database and load the settings
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to settings database", zap.Error(err))
		}
		store := stacks.NewStore(db, cfg.Reconcile.SeedSettings(), logg)
		if err := store.Migrate(ctx); err != nil {
			logg.Fatal("Failed to migrate settings tables", zap.Error(err))
		}
		settings, err := store.Load(ctx)
		if err != nil {
			logg.Fatal("Failed to load settings", zap.Error(err))
		}
		logg.Info("Settings loaded",
			zap.Int("default_limit", settings.DefaultLimit),
			zap.Int("overrides", len(settings.Overrides())),
			zap.Bool("batch_enabled", settings.BatchEnabled),
		)

		// 4. Initialize Storage (Optional)
		var exporter *stacks.Exporter
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Warn("Snapshot bucket unavailable, export disabled", zap.Error(err))
			} else {
				exporter = stacks.NewExporter(client, cfg.Storage.Bucket)
			}
		}

		// 5. Start the reconcile loop
		engine := reconcile.NewEngine(settings, logg.Named("reconcile"))
		loop := reconcile.NewLoop(engine, cfg.Reconcile.TickInterval(), logg.Named("reconcile"))
		loopDone := make(chan error, 1)
		go func() { loopDone <- loop.Run(ctx) }()

		// 6. Populate the world, then attach the loop and scan
		w := world.New(logg.Named("world"))
		if worldSeed != "" {
			specs, err := world.LoadSeed(worldSeed)
			if err != nil {
				logg.Fatal("Failed to load world seed", zap.Error(err))
			}
			if _, err := w.Populate(specs); err != nil {
				logg.Fatal("Failed to populate world", zap.Error(err))
			}
		}
		w.SetListener(loop)
		if _, err := loop.Scan(ctx, w); err != nil {
			logg.Fatal("Startup scan failed", zap.Error(err))
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 8. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(stacks.NewFeature(stacks.NewService(loop, store, exporter, logg), cfg.Server.Actor()))
		mgr.Register(world.NewFeature(w, cfg.Server.WorldAPI, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 9. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		select {
		case <-ctx.Done():
		case err := <-loopDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				logg.Error("Reconcile loop exited", zap.Error(err))
			}
		}
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		stop()
	},
}

func init() {
	startCmd.Flags().StringVar(&worldSeed, "world", "", "YAML file of generators to place in the world before the startup scan")
	RootCmd.AddCommand(startCmd)
}
